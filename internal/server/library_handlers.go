package server

import (
	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/library"
	"github.com/beatporter/beatporter/internal/metrics"
)

func (s *Server) getLibrary(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	c.JSON(200, LibraryResponse{
		ID:            lib.ID,
		Name:          lib.Name,
		TrackCount:    len(lib.Tracks),
		PlaylistCount: len(lib.Playlists),
	})
}

func (s *Server) deleteLibrary(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		c.JSON(404, gin.H{"error": library.ErrNotFound.Error()})
		return
	}
	metrics.LibrariesResident.Set(float64(s.store.Len()))
	c.JSON(200, MessageResponse{Message: "Library deleted"})
}

// listTracks returns tracks, optionally scoped to a playlist (in the
// playlist's stored order) and filtered by a substring search.
func (s *Server) listTracks(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	tracks, err := scopedTracks(lib, c.Query("playlist_id"))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	if q := c.Query("q"); q != "" {
		filtered := tracks[:0:0]
		for _, t := range tracks {
			if matchesQuery(t, q) {
				filtered = append(filtered, t)
			}
		}
		tracks = filtered
	}

	c.JSON(200, tracks)
}

func (s *Server) listPlaylists(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	playlists := make([]PlaylistResponse, 0, len(lib.Playlists))
	for _, pl := range lib.Playlists {
		playlists = append(playlists, PlaylistResponse{
			ID:         pl.ID,
			Name:       pl.Name,
			TrackCount: len(pl.TrackIDs),
		})
	}
	c.JSON(200, playlists)
}

// updateTrack applies a partial metadata edit. Custom fields merge per
// key; tags are added as a set. Edits are visible to every playlist
// referencing the track.
func (s *Server) updateTrack(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	track, ok := lib.Track(c.Param("track_id"))
	if !ok {
		c.JSON(404, gin.H{"error": ErrTrackNotFound.Error()})
		return
	}

	var req TrackUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		track.Title = *req.Title
	}
	if req.Artist != nil {
		track.Artist = *req.Artist
	}
	if req.Key != nil {
		track.Key = *req.Key
	}
	if req.Genre != nil {
		track.Genre = *req.Genre
	}
	if req.BPM != nil {
		track.BPM = req.BPM
	}
	if req.Year != nil {
		track.Year = req.Year
	}
	if req.DurationSeconds != nil {
		track.DurationSeconds = req.DurationSeconds
	}
	track.MergeCustomFields(req.CustomFields)
	track.AddTags(req.AddTags...)

	c.JSON(200, track)
}
