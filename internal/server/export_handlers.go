package server

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/export"
	"github.com/beatporter/beatporter/internal/format"
	"github.com/beatporter/beatporter/internal/metrics"
)

// exportLibrary renders the library, or one playlist of it, in the
// requested format and returns the text directly.
func (s *Server) exportLibrary(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	target := format.Format(c.Query("format"))
	renderer, err := format.RendererFor(target)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	tracks, err := scopedTracks(lib, c.Query("playlist_id"))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	content, err := renderer.Render(tracks)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render %s: %v", target, err)})
		return
	}

	metrics.ExportsTotal.WithLabelValues(string(target)).Inc()
	filename := fmt.Sprintf("%s.%s", export.SanitizeFilename(lib.Name), format.Extension(target))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.String(200, content)
}

// exportBundle renders the selected formats and returns them packaged
// into one zip archive, optionally persisting it to bundle storage.
func (s *Server) exportBundle(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var req ExportBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	formats := make([]format.Format, 0, len(req.Formats))
	for _, name := range req.Formats {
		formats = append(formats, format.Format(name))
	}

	tracks, err := scopedTracks(lib, req.PlaylistID)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	data, err := export.Bundle(lib.Name, tracks, formats)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	for _, f := range formats {
		metrics.ExportsTotal.WithLabelValues(string(f)).Inc()
	}

	if req.Persist && s.bundles != nil {
		name := fmt.Sprintf("%s.zip", export.SanitizeFilename(lib.Name))
		location, err := s.bundles.SaveBundle(c.Request.Context(), name, data)
		if err != nil {
			slog.Error("Failed to persist bundle", "library", lib.ID, "error", err)
		} else {
			c.Header("X-Bundle-Location", location)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		export.SanitizeFilename(lib.Name)+".zip"))
	c.Data(200, "application/zip", data)
}
