package format

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/beatporter/beatporter/internal/domain"
)

// Column aliases tolerated on import, in priority order. The first
// header matching wins, so a file carrying both "Title" and "Name"
// reads from "Title".
var seratoColumnAliases = map[string][]string{
	"title":  {"Title", "Name", "Song"},
	"artist": {"Artist"},
	"file":   {"File", "Location", "Filename"},
	"key":    {"Key"},
	"bpm":    {"BPM", "Tempo"},
	"year":   {"Year", "Release Year"},
}

type SeratoParser struct{}

func NewSeratoParser() *SeratoParser {
	return &SeratoParser{}
}

func (p *SeratoParser) Name() string { return string(FormatSerato) }

// Parse reads a header-driven Serato CSV export. Missing columns are
// treated as absent values; unparseable BPM and Year values degrade to
// absent without failing the row.
func (p *SeratoParser) Parse(filename string, content []byte) (*domain.Library, *Metadata, error) {
	text := strings.ToValidUTF8(string(content), "�")
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &ParseError{Format: FormatSerato, Err: err}
	}

	lib := domain.NewLibrary(filename)
	var playlistIDs []string

	if len(records) > 0 {
		columns := resolveColumns(records[0])
		for _, record := range records[1:] {
			track := &domain.Track{
				ID:       uuid.NewString(),
				Title:    columns.get(record, "title"),
				Artist:   columns.get(record, "artist"),
				FilePath: columns.get(record, "file"),
				Key:      columns.get(record, "key"),
			}
			if bpm, err := strconv.ParseFloat(columns.get(record, "bpm"), 64); err == nil {
				track.BPM = &bpm
			}
			if year, err := strconv.Atoi(columns.get(record, "year")); err == nil {
				track.Year = &year
			}
			duration := domain.DefaultDurationSeconds
			track.DurationSeconds = &duration

			lib.AddTrack(track)
			playlistIDs = append(playlistIDs, track.ID)
		}
	}

	if len(playlistIDs) > 0 {
		lib.AddPlaylist(ImportedPlaylistName, playlistIDs)
	}

	meta := &Metadata{
		SourceFormat:  string(FormatSerato),
		TrackCount:    len(lib.Tracks),
		PlaylistCount: len(lib.Playlists),
	}
	return lib, meta, nil
}

// columnMap maps canonical field names to record indices.
type columnMap map[string]int

func resolveColumns(header []string) columnMap {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	columns := make(columnMap)
	for field, aliases := range seratoColumnAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				columns[field] = i
				break
			}
		}
	}
	return columns
}

func (c columnMap) get(record []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

type SeratoRenderer struct{}

func NewSeratoRenderer() *SeratoRenderer {
	return &SeratoRenderer{}
}

func (r *SeratoRenderer) Name() string { return string(FormatSerato) }

// Render writes the fixed six-column Serato header and one row per
// track. Text fields pass through the formula-injection guard before
// standard CSV quoting; absent numerics become empty cells.
func (r *SeratoRenderer) Render(tracks []*domain.Track) (string, error) {
	var b strings.Builder
	writer := csv.NewWriter(&b)

	if err := writer.Write([]string{"Title", "Artist", "File", "Key", "BPM", "Year"}); err != nil {
		return "", err
	}
	for _, t := range tracks {
		bpm := ""
		if t.BPM != nil {
			bpm = strconv.FormatFloat(*t.BPM, 'f', -1, 64)
		}
		year := ""
		if t.Year != nil {
			year = strconv.Itoa(*t.Year)
		}
		row := []string{
			guardCSVFormula(t.Title),
			guardCSVFormula(t.Artist),
			guardCSVFormula(t.FilePath),
			guardCSVFormula(t.Key),
			bpm,
			year,
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
