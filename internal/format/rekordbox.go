package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/google/uuid"

	"github.com/beatporter/beatporter/internal/domain"
)

// ExportedPlaylistName is the synthetic playlist node emitted by the
// XML renderers, wrapping every rendered track.
const ExportedPlaylistName = "Exported"

type RekordboxParser struct{}

func NewRekordboxParser() *RekordboxParser {
	return &RekordboxParser{}
}

func (p *RekordboxParser) Name() string { return string(FormatRekordbox) }

// Parse reads a Rekordbox DJ_PLAYLISTS XML export. The schema-native
// TrackID attribute is used only to resolve playlist membership within
// this parse; every track gets a freshly minted id.
func (p *RekordboxParser) Parse(filename string, content []byte) (*domain.Library, *Metadata, error) {
	doc, err := xmlquery.Parse(strings.NewReader(strings.ToValidUTF8(string(content), "�")))
	if err != nil {
		return nil, nil, &ParseError{Format: FormatRekordbox, Err: err}
	}

	lib := domain.NewLibrary(filename)
	nativeToID := make(map[string]string)

	for _, el := range xmlquery.Find(doc, "//COLLECTION/TRACK") {
		track := &domain.Track{
			ID:       uuid.NewString(),
			Title:    el.SelectAttr("Name"),
			Artist:   el.SelectAttr("Artist"),
			FilePath: normalizeLocation(el.SelectAttr("Location")),
			Key:      el.SelectAttr("Tonality"),
		}
		if bpm, err := strconv.ParseFloat(el.SelectAttr("AverageBpm"), 64); err == nil {
			track.BPM = &bpm
		}
		if year, err := strconv.Atoi(el.SelectAttr("Year")); err == nil {
			track.Year = &year
		}
		duration := domain.DefaultDurationSeconds
		if secs, err := strconv.Atoi(el.SelectAttr("TotalTime")); err == nil {
			duration = secs
		}
		track.DurationSeconds = &duration

		lib.AddTrack(track)
		if native := el.SelectAttr("TrackID"); native != "" {
			nativeToID[native] = track.ID
		}
	}

	playlistCount := 0
	// Type="1" marks playlist nodes; Type="0" nodes are folders.
	for _, node := range xmlquery.Find(doc, "//PLAYLISTS//NODE[@Type='1']") {
		name := node.SelectAttr("Name")
		if name == "" {
			name = "Playlist"
		}
		var ids []string
		for _, ref := range xmlquery.Find(node, "TRACK") {
			if id, ok := nativeToID[ref.SelectAttr("Key")]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			lib.AddPlaylist(name, ids)
			playlistCount++
		}
	}

	meta := &Metadata{
		SourceFormat:  string(FormatRekordbox),
		TrackCount:    len(lib.Tracks),
		PlaylistCount: playlistCount,
	}
	return lib, meta, nil
}

// normalizeLocation strips the file URI prefix Rekordbox uses for
// track locations, leaving a plain path.
func normalizeLocation(loc string) string {
	loc = strings.TrimPrefix(loc, "file://localhost")
	return strings.TrimPrefix(loc, "file://")
}

type RekordboxRenderer struct{}

func NewRekordboxRenderer() *RekordboxRenderer {
	return &RekordboxRenderer{}
}

func (r *RekordboxRenderer) Name() string { return string(FormatRekordbox) }

// Render emits a DJ_PLAYLISTS document with one TRACK per input track
// and a single "Exported" playlist referencing them all. TrackID is a
// synthetic 1-based sequence number, unrelated to in-memory ids.
func (r *RekordboxRenderer) Render(tracks []*domain.Track) (string, error) {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<DJ_PLAYLISTS Version=\"1.0\">\n")
	b.WriteString("  <COLLECTION>\n")
	for i, t := range tracks {
		bpm := ""
		if t.BPM != nil {
			bpm = strconv.FormatFloat(*t.BPM, 'f', -1, 64)
		}
		year := ""
		if t.Year != nil {
			year = strconv.Itoa(*t.Year)
		}
		fmt.Fprintf(&b,
			"    <TRACK TrackID=\"%d\" Name=\"%s\" Artist=\"%s\" Location=\"%s\" AverageBpm=\"%s\" Year=\"%s\" TotalTime=\"%d\" Tonality=\"%s\" />\n",
			i+1,
			escapeXML(t.Title),
			escapeXML(t.Artist),
			escapeXML(t.FilePath),
			bpm,
			year,
			t.Duration(),
			escapeXML(t.Key),
		)
	}
	b.WriteString("  </COLLECTION>\n")
	b.WriteString("  <PLAYLISTS>\n")
	b.WriteString("    <NODE Name=\"ROOT\" Type=\"0\">\n")
	fmt.Fprintf(&b, "      <NODE Name=\"%s\" Type=\"1\">\n", ExportedPlaylistName)
	for i := range tracks {
		fmt.Fprintf(&b, "        <TRACK Key=\"%d\" />\n", i+1)
	}
	b.WriteString("      </NODE>\n")
	b.WriteString("    </NODE>\n")
	b.WriteString("  </PLAYLISTS>\n")
	b.WriteString("</DJ_PLAYLISTS>\n")
	return b.String(), nil
}
