package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatporter/beatporter/internal/domain"
)

func TestSeratoParse(t *testing.T) {
	content := "Title,Artist,File,Key,BPM,Year\n" +
		"One More Time,Daft Punk,/music/one.mp3,8A,123.5,2000\n" +
		"Born Slippy,Underworld,/music/born.mp3,4A,invalid_bpm,not_a_year\n"

	lib, meta, err := NewSeratoParser().Parse("export.csv", []byte(content))
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 2)

	valid := lib.Tracks[0]
	require.NotNil(t, valid.BPM)
	assert.Equal(t, 123.5, *valid.BPM)
	require.NotNil(t, valid.Year)
	assert.Equal(t, 2000, *valid.Year)
	assert.Equal(t, "8A", valid.Key)

	// Conversion failures degrade per field, not per file.
	degraded := lib.Tracks[1]
	assert.Nil(t, degraded.BPM)
	assert.Nil(t, degraded.Year)
	assert.Equal(t, "Born Slippy", degraded.Title)

	assert.Equal(t, "serato", meta.SourceFormat)
	assert.Equal(t, 1, meta.PlaylistCount)
}

func TestSeratoParseHeaderAliases(t *testing.T) {
	content := "Song,Artist,Location,Tempo,Release Year\n" +
		"One More Time,Daft Punk,/music/one.mp3,123,2000\n"

	lib, _, err := NewSeratoParser().Parse("export.csv", []byte(content))
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 1)

	track := lib.Tracks[0]
	assert.Equal(t, "One More Time", track.Title)
	assert.Equal(t, "/music/one.mp3", track.FilePath)
	require.NotNil(t, track.BPM)
	assert.Equal(t, 123.0, *track.BPM)
	require.NotNil(t, track.Year)
	assert.Equal(t, 2000, *track.Year)
}

func TestSeratoParseMissingColumns(t *testing.T) {
	content := "Title,Artist\nOne More Time,Daft Punk\n"

	lib, _, err := NewSeratoParser().Parse("export.csv", []byte(content))
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 1)
	assert.Empty(t, lib.Tracks[0].FilePath)
	assert.Nil(t, lib.Tracks[0].BPM)
	assert.Equal(t, 300, lib.Tracks[0].Duration())
}

func TestSeratoParseMalformedQuoting(t *testing.T) {
	content := "Title,Artist\n\"unterminated,Daft Punk\nrow2,artist2\n"

	_, _, err := NewSeratoParser().Parse("export.csv", []byte(content))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, FormatSerato, parseErr.Format)
}

func TestSeratoRenderFormulaGuard(t *testing.T) {
	bpm := 128.0
	tracks := []*domain.Track{
		{Title: "=SUM(A1:A10)", Artist: "@attacker", FilePath: "/music/a.mp3", BPM: &bpm},
		{Title: "Safe Title", Artist: "+plus", FilePath: "-dash"},
	}

	out, err := NewSeratoRenderer().Render(tracks)
	require.NoError(t, err)

	assert.Contains(t, out, "'=SUM(A1:A10)")
	assert.Contains(t, out, "'@attacker")
	assert.Contains(t, out, "'+plus")
	assert.Contains(t, out, "'-dash")
	assert.NotContains(t, out, "\n=SUM")
}

func TestSeratoRenderHeaderAndEmptyNumerics(t *testing.T) {
	out, err := NewSeratoRenderer().Render([]*domain.Track{
		{Title: "No Numbers", Artist: "Artist", FilePath: "/a.mp3"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Title,Artist,File,Key,BPM,Year", lines[0])
	assert.Equal(t, "No Numbers,Artist,/a.mp3,,,", lines[1])
}

func TestSeratoRenderEmpty(t *testing.T) {
	out, err := NewSeratoRenderer().Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "Title,Artist,File,Key,BPM,Year\n", out)
}

func TestSeratoRoundTrip(t *testing.T) {
	bpm := 123.5
	year := 2000
	tracks := []*domain.Track{
		{ID: "a", Title: "One More Time", Artist: "Daft Punk", FilePath: "/music/one.mp3", Key: "8A", BPM: &bpm, Year: &year},
	}

	out, err := NewSeratoRenderer().Render(tracks)
	require.NoError(t, err)

	lib, _, err := NewSeratoParser().Parse("export.csv", []byte(out))
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 1)

	got := lib.Tracks[0]
	assert.Equal(t, "One More Time", got.Title)
	assert.Equal(t, "Daft Punk", got.Artist)
	assert.Equal(t, "8A", got.Key)
	require.NotNil(t, got.BPM)
	assert.Equal(t, 123.5, *got.BPM)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2000, *got.Year)
}
