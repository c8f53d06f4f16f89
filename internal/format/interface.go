package format

import (
	"fmt"

	"github.com/beatporter/beatporter/internal/domain"
)

// Format identifies one of the supported library schemas.
type Format string

const (
	FormatM3U       Format = "m3u"
	FormatSerato    Format = "serato"
	FormatRekordbox Format = "rekordbox"
	FormatTraktor   Format = "traktor"
	FormatTracklist Format = "tracklist"
	FormatUnknown   Format = "unknown"
)

// Metadata summarizes the result of one parse.
type Metadata struct {
	SourceFormat  string `json:"source_format"`
	TrackCount    int    `json:"track_count"`
	PlaylistCount int    `json:"playlist_count"`
}

// Parser converts raw bytes of one schema into a fresh library. Field
// level conversion failures (bad BPM, year, duration strings) degrade
// to absent values; structurally malformed input returns a *ParseError.
type Parser interface {
	Name() string
	Parse(filename string, content []byte) (*domain.Library, *Metadata, error)
}

// Renderer serializes an ordered track sequence into one schema. The
// caller is responsible for scoping the sequence to a playlist first.
type Renderer interface {
	Name() string
	Render(tracks []*domain.Track) (string, error)
}

// ParserFor returns the parser for a detected format.
func ParserFor(f Format) (Parser, error) {
	switch f {
	case FormatM3U:
		return NewM3UParser(), nil
	case FormatSerato:
		return NewSeratoParser(), nil
	case FormatRekordbox:
		return NewRekordboxParser(), nil
	case FormatTraktor:
		return NewTraktorParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// RendererFor returns the renderer for an export format name.
func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatM3U:
		return NewM3URenderer(), nil
	case FormatSerato:
		return NewSeratoRenderer(), nil
	case FormatRekordbox:
		return NewRekordboxRenderer(), nil
	case FormatTraktor:
		return NewTraktorRenderer(), nil
	case FormatTracklist:
		return NewTracklistRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// Extension returns the conventional file extension for a format.
func Extension(f Format) string {
	switch f {
	case FormatM3U:
		return "m3u"
	case FormatSerato:
		return "csv"
	case FormatRekordbox:
		return "xml"
	case FormatTraktor:
		return "nml"
	case FormatTracklist:
		return "txt"
	default:
		return "dat"
	}
}
