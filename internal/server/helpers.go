package server

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/domain"
	"github.com/beatporter/beatporter/internal/library"
)

// libraryOr404 resolves the :id path parameter, writing the 404
// response itself when the library is unknown.
func (s *Server) libraryOr404(c *gin.Context) (*domain.Library, bool) {
	lib, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"error": library.ErrNotFound.Error()})
		return nil, false
	}
	return lib, true
}

// scopedTracks returns a library's tracks, narrowed to a playlist's
// membership (in the playlist's stored order) when playlistID is set.
func scopedTracks(lib *domain.Library, playlistID string) ([]*domain.Track, error) {
	if playlistID == "" {
		return lib.Tracks, nil
	}
	tracks, ok := lib.PlaylistTracks(playlistID)
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	return tracks, nil
}

// matchesQuery reports whether a track matches a case-insensitive
// substring search over title, artist and path.
func matchesQuery(t *domain.Track, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Artist), q) ||
		strings.Contains(strings.ToLower(t.FilePath), q)
}

// normalizeForDup lowercases a value and strips everything but letters,
// digits and spaces, so near-identical metadata buckets together.
func normalizeForDup(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fileNameOf returns the lowercased final path segment, tolerating
// backslash separators.
func fileNameOf(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	if idx := strings.LastIndex(normalized, "/"); idx >= 0 {
		normalized = normalized[idx+1:]
	}
	return strings.ToLower(normalized)
}
