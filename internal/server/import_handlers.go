package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/format"
	"github.com/beatporter/beatporter/internal/metrics"
)

// importLibrary accepts a multipart upload, detects its schema, parses
// it into a fresh library and registers it. The byte-size ceiling is
// enforced before any parsing happens.
func (s *Server) importLibrary(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid upload: %v", err)})
		return
	}

	maxBytes := s.cfg.Server.MaxUploadBytes
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		c.JSON(413, gin.H{"error": fmt.Sprintf("%v: limit is %d bytes", ErrUploadTooLarge, maxBytes)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid upload: %v", err)})
		return
	}
	defer file.Close()

	var reader io.Reader = file
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("failed to read upload: %v", err)})
		return
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		c.JSON(413, gin.H{"error": fmt.Sprintf("%v: limit is %d bytes", ErrUploadTooLarge, maxBytes)})
		return
	}

	detected := format.Detect(fileHeader.Filename, content)
	if detected == format.FormatUnknown {
		metrics.ImportsTotal.WithLabelValues("unknown", "rejected").Inc()
		c.JSON(400, gin.H{"error": "could not detect format"})
		return
	}

	parser, err := format.ParserFor(detected)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	lib, meta, err := parser.Parse(fileHeader.Filename, content)
	if err != nil {
		var parseErr *format.ParseError
		if errors.As(err, &parseErr) {
			metrics.ImportsTotal.WithLabelValues(string(detected), "parse_error").Inc()
			c.JSON(400, gin.H{"error": parseErr.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	s.store.Create(lib)
	metrics.ImportsTotal.WithLabelValues(string(detected), "ok").Inc()
	metrics.LibrariesResident.Set(float64(s.store.Len()))

	slog.Info("Library imported",
		"libraryId", lib.ID,
		"format", meta.SourceFormat,
		"tracks", meta.TrackCount,
		"playlists", meta.PlaylistCount)

	c.JSON(200, ImportResponse{
		LibraryID:     lib.ID,
		SourceFormat:  meta.SourceFormat,
		TrackCount:    meta.TrackCount,
		PlaylistCount: meta.PlaylistCount,
	})
}
