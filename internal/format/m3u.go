package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/beatporter/beatporter/internal/domain"
)

// ImportedPlaylistName is the synthetic playlist wrapping all tracks
// parsed from a format with no native playlist concept.
const ImportedPlaylistName = "Imported"

type M3UParser struct{}

func NewM3UParser() *M3UParser {
	return &M3UParser{}
}

func (p *M3UParser) Name() string { return string(FormatM3U) }

// Parse reads an extended M3U playlist. An #EXTINF line sets pending
// metadata for the next non-comment line, which is the file path.
func (p *M3UParser) Parse(filename string, content []byte) (*domain.Library, *Metadata, error) {
	text := strings.ToValidUTF8(string(content), "�")
	lib := domain.NewLibrary(filename)

	var (
		pendingTitle    string
		pendingArtist   string
		pendingDuration *int
		playlistIDs     []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF:") {
			pendingTitle, pendingArtist, pendingDuration = parseExtInf(line)
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		title := pendingTitle
		if title == "" {
			title = lastPathSegment(line)
		}
		duration := domain.DefaultDurationSeconds
		if pendingDuration != nil {
			duration = *pendingDuration
		}
		track := &domain.Track{
			ID:              uuid.NewString(),
			Title:           title,
			Artist:          pendingArtist,
			FilePath:        line,
			DurationSeconds: &duration,
		}
		lib.AddTrack(track)
		playlistIDs = append(playlistIDs, track.ID)

		pendingTitle, pendingArtist, pendingDuration = "", "", nil
	}

	if len(playlistIDs) > 0 {
		lib.AddPlaylist(ImportedPlaylistName, playlistIDs)
	}

	meta := &Metadata{
		SourceFormat:  string(FormatM3U),
		TrackCount:    len(lib.Tracks),
		PlaylistCount: len(lib.Playlists),
	}
	return lib, meta, nil
}

// parseExtInf splits "#EXTINF:<duration>,<artist> - <title>". A
// negative or unparseable duration yields nil; a missing " - "
// separator puts the whole remainder in the title.
func parseExtInf(line string) (title, artist string, duration *int) {
	meta := strings.TrimPrefix(line, "#EXTINF:")
	durStr, rest, ok := strings.Cut(meta, ",")
	if !ok {
		return "", "", nil
	}

	if f, err := strconv.ParseFloat(strings.TrimSpace(durStr), 64); err == nil && f > 0 {
		d := int(f)
		duration = &d
	}

	if a, t, ok := strings.Cut(rest, " - "); ok {
		artist, title = a, t
	} else {
		title = rest
	}
	return title, artist, duration
}

func lastPathSegment(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	if idx := strings.LastIndex(normalized, "/"); idx >= 0 {
		return normalized[idx+1:]
	}
	return normalized
}

type M3URenderer struct{}

func NewM3URenderer() *M3URenderer {
	return &M3URenderer{}
}

func (r *M3URenderer) Name() string { return string(FormatM3U) }

// Render emits the #EXTM3U header followed by an #EXTINF directive and
// a bare path line per track. M3U has no quoting grammar, so no
// escaping is applied.
func (r *M3URenderer) Render(tracks []*domain.Track) (string, error) {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, t := range tracks {
		fmt.Fprintf(&b, "#EXTINF:%d,%s - %s\n", t.Duration(), t.Artist, t.Title)
		b.WriteString(t.FilePath)
		b.WriteString("\n")
	}
	return b.String(), nil
}
