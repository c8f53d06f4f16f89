package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/google/uuid"

	"github.com/beatporter/beatporter/internal/domain"
)

type TraktorParser struct{}

func NewTraktorParser() *TraktorParser {
	return &TraktorParser{}
}

func (p *TraktorParser) Name() string { return string(FormatTraktor) }

// Parse reads a Traktor NML collection. Playlist ENTRY references in
// this schema variant carry the track's file path (or title) as KEY
// rather than a stable numeric id, so cross-referencing uses the
// reconstructed path with a title fallback. This is a format-specific
// heuristic of the observed variant, not a general NML rule.
func (p *TraktorParser) Parse(filename string, content []byte) (*domain.Library, *Metadata, error) {
	doc, err := xmlquery.Parse(strings.NewReader(strings.ToValidUTF8(string(content), "�")))
	if err != nil {
		return nil, nil, &ParseError{Format: FormatTraktor, Err: err}
	}

	lib := domain.NewLibrary(filename)
	nativeToID := make(map[string]string)

	for _, entry := range xmlquery.Find(doc, "//COLLECTION/ENTRY") {
		track := &domain.Track{
			ID:     uuid.NewString(),
			Title:  entry.SelectAttr("TITLE"),
			Artist: entry.SelectAttr("ARTIST"),
		}

		duration := domain.DefaultDurationSeconds
		if info := xmlquery.FindOne(entry, "INFO"); info != nil {
			if bpm, err := strconv.ParseFloat(info.SelectAttr("BPM"), 64); err == nil {
				track.BPM = &bpm
			}
			track.Key = info.SelectAttr("MUSICAL_KEY")
			if date := info.SelectAttr("RELEASE_DATE"); len(date) >= 4 {
				if year, err := strconv.Atoi(date[:4]); err == nil {
					track.Year = &year
				}
			}
			if secs, ok := parsePlaytime(info.SelectAttr("PLAYTIME")); ok {
				duration = secs
			}
		}
		track.DurationSeconds = &duration

		// DIR is expected to end with a path separator, so plain
		// concatenation reconstructs the full path.
		if loc := xmlquery.FindOne(entry, "LOCATION"); loc != nil {
			track.FilePath = loc.SelectAttr("DIR") + loc.SelectAttr("FILE")
		}

		lib.AddTrack(track)
		if key := trackNativeKey(track); key != "" {
			nativeToID[key] = track.ID
		}
	}

	playlistCount := 0
	// TYPE="PLAYLIST" marks playlists; FOLDER nodes are containers only.
	for _, node := range xmlquery.Find(doc, "//PLAYLISTS//NODE[@TYPE='PLAYLIST']") {
		name := node.SelectAttr("NAME")
		if name == "" {
			name = "Playlist"
		}
		var ids []string
		for _, ref := range xmlquery.Find(node, "ENTRY") {
			if id, ok := nativeToID[ref.SelectAttr("KEY")]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			lib.AddPlaylist(name, ids)
			playlistCount++
		}
	}

	meta := &Metadata{
		SourceFormat:  string(FormatTraktor),
		TrackCount:    len(lib.Tracks),
		PlaylistCount: playlistCount,
	}
	return lib, meta, nil
}

// parsePlaytime reads a PLAYTIME value: dotted values parse as float
// then truncate, undotted ones as int.
func parsePlaytime(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// trackNativeKey is the value playlist ENTRY KEY attributes are matched
// against: the file path, or the title when the path is empty.
func trackNativeKey(t *domain.Track) string {
	if t.FilePath != "" {
		return t.FilePath
	}
	return t.Title
}

type TraktorRenderer struct{}

func NewTraktorRenderer() *TraktorRenderer {
	return &TraktorRenderer{}
}

func (r *TraktorRenderer) Name() string { return string(FormatTraktor) }

// Render emits an NML document with one ENTRY per track and a single
// "Exported" playlist. Playlist entries reference tracks by file path
// (or title), mirroring the parser's resolution strategy so the output
// round-trips.
func (r *TraktorRenderer) Render(tracks []*domain.Track) (string, error) {
	var b strings.Builder
	b.WriteString("<NML VERSION=\"19\">\n")
	b.WriteString("  <COLLECTION>\n")
	for _, t := range tracks {
		bpm := ""
		if t.BPM != nil {
			bpm = strconv.FormatFloat(*t.BPM, 'f', -1, 64)
		}
		releaseDate := ""
		if t.Year != nil {
			releaseDate = fmt.Sprintf("%d-01-01", *t.Year)
		}
		dir, file := splitLocation(t.FilePath)
		fmt.Fprintf(&b, "    <ENTRY TITLE=\"%s\" ARTIST=\"%s\">", escapeXML(t.Title), escapeXML(t.Artist))
		fmt.Fprintf(&b, "<INFO BPM=\"%s\" MUSICAL_KEY=\"%s\" RELEASE_DATE=\"%s\" PLAYTIME=\"%d\" />",
			bpm, escapeXML(t.Key), releaseDate, t.Duration())
		fmt.Fprintf(&b, "<LOCATION DIR=\"%s\" FILE=\"%s\" /></ENTRY>\n", escapeXML(dir), escapeXML(file))
	}
	b.WriteString("  </COLLECTION>\n")
	b.WriteString("  <PLAYLISTS>\n")
	b.WriteString("    <NODE NAME=\"ROOT\" TYPE=\"FOLDER\">\n")
	fmt.Fprintf(&b, "      <NODE NAME=\"%s\" TYPE=\"PLAYLIST\">\n", ExportedPlaylistName)
	for _, t := range tracks {
		fmt.Fprintf(&b, "        <ENTRY KEY=\"%s\" />\n", escapeXML(trackNativeKey(t)))
	}
	b.WriteString("      </NODE>\n")
	b.WriteString("    </NODE>\n")
	b.WriteString("  </PLAYLISTS>\n")
	b.WriteString("</NML>\n")
	return b.String(), nil
}

// splitLocation splits a path at the last slash into Traktor's DIR and
// FILE attributes, DIR keeping its trailing separator.
func splitLocation(path string) (dir, file string) {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx+1], path[idx+1:]
	}
	return "", path
}
