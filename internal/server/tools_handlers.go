package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/domain"
)

const maxRewriteExamples = 5

// previewRewritePaths reports which tracks a path rewrite would touch,
// without mutating anything.
func (s *Server) previewRewritePaths(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var req RewritePathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	resp := RewritePreviewResponse{
		TotalTracks: len(lib.Tracks),
		Examples:    []RewriteExample{},
	}
	for _, t := range lib.Tracks {
		if !strings.Contains(t.FilePath, req.Search) {
			continue
		}
		resp.AffectedTracks++
		if len(resp.Examples) < maxRewriteExamples {
			resp.Examples = append(resp.Examples, RewriteExample{
				TrackID: t.ID,
				OldPath: t.FilePath,
				NewPath: strings.ReplaceAll(t.FilePath, req.Search, req.Replace),
			})
		}
	}

	c.JSON(200, resp)
}

// applyRewritePaths performs the substring replacement on every
// matching track path.
func (s *Server) applyRewritePaths(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var req RewritePathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	changed := 0
	for _, t := range lib.Tracks {
		if strings.Contains(t.FilePath, req.Search) {
			t.FilePath = strings.ReplaceAll(t.FilePath, req.Search, req.Replace)
			changed++
		}
	}

	c.JSON(200, gin.H{"changed_tracks": changed})
}

// metadataIssues reports missing or suspect metadata per track id.
func (s *Server) metadataIssues(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	issues := map[string][]string{
		"missing_bpm":       {},
		"missing_key":       {},
		"missing_year":      {},
		"missing_file_path": {},
		"suspicious_bpm":    {},
		"empty_title":       {},
		"empty_artist":      {},
	}

	for _, t := range lib.Tracks {
		if strings.TrimSpace(t.Title) == "" {
			issues["empty_title"] = append(issues["empty_title"], t.ID)
		}
		if strings.TrimSpace(t.Artist) == "" {
			issues["empty_artist"] = append(issues["empty_artist"], t.ID)
		}
		switch {
		case t.BPM == nil || *t.BPM <= 0:
			issues["missing_bpm"] = append(issues["missing_bpm"], t.ID)
		case *t.BPM > 300:
			issues["suspicious_bpm"] = append(issues["suspicious_bpm"], t.ID)
		}
		if strings.TrimSpace(t.Key) == "" {
			issues["missing_key"] = append(issues["missing_key"], t.ID)
		}
		if t.Year == nil || *t.Year <= 0 {
			issues["missing_year"] = append(issues["missing_year"], t.ID)
		}
		if t.FilePath == "" {
			issues["missing_file_path"] = append(issues["missing_file_path"], t.ID)
		}
	}

	c.JSON(200, gin.H{
		"total_tracks": len(lib.Tracks),
		"issues":       issues,
	})
}

// metadataAutoFix applies the selected normalizations and reports how
// many tracks changed.
func (s *Server) metadataAutoFix(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var req MetadataAutoFixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	changed := 0
	for _, t := range lib.Tracks {
		if autoFixTrack(t, req) {
			changed++
		}
	}

	c.JSON(200, gin.H{"changed_tracks": changed})
}

func autoFixTrack(t *domain.Track, req MetadataAutoFixRequest) bool {
	beforeTitle, beforeArtist, beforeKey, beforeYear := t.Title, t.Artist, t.Key, t.Year

	if req.NormalizeWhitespace {
		t.Title = strings.TrimSpace(t.Title)
		t.Artist = strings.TrimSpace(t.Artist)
		t.Key = collapseSpaces(strings.TrimSpace(t.Key))
	}
	if req.UpperCaseKeys {
		t.Key = strings.ToUpper(t.Key)
	}
	if req.ZeroYearToNull && t.Year != nil && *t.Year == 0 {
		t.Year = nil
	}

	return t.Title != beforeTitle || t.Artist != beforeArtist ||
		t.Key != beforeKey || t.Year != beforeYear
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

// duplicates groups tracks by normalized (artist, title, filename).
func (s *Server) duplicates(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	type dupKey struct {
		artist, title, fileName string
	}
	buckets := make(map[dupKey][]*domain.Track)
	var order []dupKey
	for _, t := range lib.Tracks {
		key := dupKey{
			artist:   normalizeForDup(t.Artist),
			title:    normalizeForDup(t.Title),
			fileName: fileNameOf(t.FilePath),
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], t)
	}

	groups := []gin.H{}
	for _, key := range order {
		tracks := buckets[key]
		if len(tracks) < 2 {
			continue
		}
		fileNames := make(map[string]struct{})
		ids := make([]string, 0, len(tracks))
		for _, t := range tracks {
			if t.FilePath != "" {
				fileNames[fileNameOf(t.FilePath)] = struct{}{}
			}
			ids = append(ids, t.ID)
		}
		names := make([]string, 0, len(fileNames))
		for name := range fileNames {
			names = append(names, name)
		}
		groups = append(groups, gin.H{
			"canonical_title":  tracks[0].Title,
			"canonical_artist": tracks[0].Artist,
			"file_names":       names,
			"track_ids":        ids,
			"count":            len(tracks),
		})
	}

	c.JSON(200, gin.H{
		"total_groups":     len(groups),
		"duplicate_groups": groups,
	})
}
