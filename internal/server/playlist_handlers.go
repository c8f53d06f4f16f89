package server

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/domain"
)

const defaultTargetMinutes = 60

// generatePlaylist builds a playlist by keyword match and a target
// length, walking candidates in library order.
func (s *Server) generatePlaylist(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var params SmartPlaylistParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if params.TargetMinutes <= 0 {
		params.TargetMinutes = defaultTargetMinutes
	}

	candidates := lib.Tracks
	if params.Keyword != "" {
		candidates = filterTracks(candidates, func(t *domain.Track) bool {
			q := strings.ToLower(params.Keyword)
			return strings.Contains(strings.ToLower(t.Title), q) ||
				strings.Contains(strings.ToLower(t.Artist), q)
		})
	}

	selected, totalSec := fillToTarget(candidates, params.TargetMinutes)
	name := fmt.Sprintf("Auto %d min", params.TargetMinutes)
	pid := lib.AddPlaylist(name, trackIDs(selected))

	c.JSON(200, GeneratedPlaylistResponse{
		PlaylistID:            pid,
		Name:                  name,
		TrackCount:            len(selected),
		ApproxDurationMinutes: approxMinutes(totalSec, len(selected)),
	})
}

// generatePlaylistV2 adds bpm/year/key range filters and sorting on
// top of the keyword selection.
func (s *Server) generatePlaylistV2(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var params SmartPlaylistParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if params.TargetMinutes <= 0 {
		params.TargetMinutes = defaultTargetMinutes
	}

	candidates := filterTracks(lib.Tracks, func(t *domain.Track) bool {
		return matchesSmartFilters(t, params)
	})
	sortCandidates(candidates, params.SortBy)

	selected, totalSec := fillToTarget(candidates, params.TargetMinutes)
	name := params.PlaylistName
	if name == "" {
		name = fmt.Sprintf("Smart %d min", params.TargetMinutes)
	}
	pid := lib.AddPlaylist(name, trackIDs(selected))

	c.JSON(200, GeneratedPlaylistResponse{
		PlaylistID:            pid,
		Name:                  name,
		TrackCount:            len(selected),
		ApproxDurationMinutes: approxMinutes(totalSec, len(selected)),
	})
}

func matchesSmartFilters(t *domain.Track, params SmartPlaylistParams) bool {
	if params.Keyword != "" {
		hay := strings.ToLower(t.Title + " " + t.Artist + " " + t.FilePath)
		if !strings.Contains(hay, strings.ToLower(params.Keyword)) {
			return false
		}
	}
	if params.MinBPM != nil && (t.BPM == nil || *t.BPM < *params.MinBPM) {
		return false
	}
	if params.MaxBPM != nil && (t.BPM == nil || *t.BPM > *params.MaxBPM) {
		return false
	}
	if params.MinYear != nil && (t.Year == nil || *t.Year < *params.MinYear) {
		return false
	}
	if params.MaxYear != nil && (t.Year == nil || *t.Year > *params.MaxYear) {
		return false
	}
	if len(params.Keys) > 0 && t.Key != "" {
		allowed := false
		for _, k := range params.Keys {
			if strings.EqualFold(k, t.Key) {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	return true
}

func sortCandidates(tracks []*domain.Track, sortBy string) {
	switch sortBy {
	case "bpm":
		sort.SliceStable(tracks, func(i, j int) bool {
			return lessNilLast(tracks[i].BPM, tracks[j].BPM)
		})
	case "year":
		sort.SliceStable(tracks, func(i, j int) bool {
			a, b := tracks[i].Year, tracks[j].Year
			if (a == nil) != (b == nil) {
				return b == nil
			}
			if a == nil {
				return false
			}
			return *a < *b
		})
	case "key":
		sort.SliceStable(tracks, func(i, j int) bool {
			a, b := tracks[i].Key, tracks[j].Key
			if (a == "") != (b == "") {
				return b == ""
			}
			return a < b
		})
	case "random":
		rand.Shuffle(len(tracks), func(i, j int) {
			tracks[i], tracks[j] = tracks[j], tracks[i]
		})
	}
}

func lessNilLast(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return b == nil
	}
	if a == nil {
		return false
	}
	return *a < *b
}

// fillToTarget selects tracks in order until the running duration
// reaches the target.
func fillToTarget(candidates []*domain.Track, targetMinutes int) ([]*domain.Track, int) {
	targetSec := targetMinutes * 60
	totalSec := 0
	var selected []*domain.Track
	for _, t := range candidates {
		if totalSec >= targetSec {
			break
		}
		selected = append(selected, t)
		totalSec += t.Duration()
	}
	return selected, totalSec
}

func filterTracks(tracks []*domain.Track, keep func(*domain.Track) bool) []*domain.Track {
	var out []*domain.Track
	for _, t := range tracks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func trackIDs(tracks []*domain.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func approxMinutes(totalSec, selectedCount int) int {
	if selectedCount == 0 {
		return 0
	}
	return int(math.Round(float64(totalSec) / 60))
}

// mergePlaylists concatenates the source playlists into a new one,
// optionally deduplicating while keeping first occurrences.
func (s *Server) mergePlaylists(c *gin.Context) {
	lib, ok := s.libraryOr404(c)
	if !ok {
		return
	}

	var req MergePlaylistsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var allIDs []string
	for _, pid := range req.SourcePlaylistIDs {
		pl, ok := lib.Playlist(pid)
		if !ok {
			c.JSON(404, gin.H{"error": fmt.Sprintf("%v: %s", ErrPlaylistNotFound, pid)})
			return
		}
		allIDs = append(allIDs, pl.TrackIDs...)
	}

	dedupe := req.Deduplicate == nil || *req.Deduplicate
	if dedupe {
		seen := make(map[string]struct{}, len(allIDs))
		deduped := allIDs[:0]
		for _, id := range allIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			deduped = append(deduped, id)
		}
		allIDs = deduped
	}

	pid := lib.AddPlaylist(req.Name, allIDs)
	c.JSON(200, gin.H{
		"playlist_id": pid,
		"track_count": len(allIDs),
	})
}
