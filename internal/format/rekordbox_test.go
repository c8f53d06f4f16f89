package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatporter/beatporter/internal/domain"
)

const rekordboxSample = `<?xml version="1.0" encoding="UTF-8"?>
<DJ_PLAYLISTS Version="1.0">
  <COLLECTION>
    <TRACK TrackID="101" Name="One More Time" Artist="Daft Punk" Location="/music/one.mp3" AverageBpm="123.5" Year="2000" TotalTime="245" Tonality="8A" />
    <TRACK TrackID="102" Name="Born Slippy" Artist="Underworld" Location="/music/born.mp3" AverageBpm="bad" Year="bad" TotalTime="bad" Tonality="4A" />
  </COLLECTION>
  <PLAYLISTS>
    <NODE Name="ROOT" Type="0">
      <NODE Name="Warmup" Type="1">
        <TRACK Key="102" />
        <TRACK Key="101" />
        <TRACK Key="999" />
      </NODE>
      <NODE Name="Empty" Type="1">
        <TRACK Key="999" />
      </NODE>
    </NODE>
  </PLAYLISTS>
</DJ_PLAYLISTS>`

func TestRekordboxParse(t *testing.T) {
	lib, meta, err := NewRekordboxParser().Parse("collection.xml", []byte(rekordboxSample))
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 2)

	first := lib.Tracks[0]
	assert.Equal(t, "One More Time", first.Title)
	assert.Equal(t, "Daft Punk", first.Artist)
	assert.Equal(t, "/music/one.mp3", first.FilePath)
	require.NotNil(t, first.BPM)
	assert.Equal(t, 123.5, *first.BPM)
	require.NotNil(t, first.Year)
	assert.Equal(t, 2000, *first.Year)
	assert.Equal(t, "8A", first.Key)
	assert.Equal(t, 245, first.Duration())

	// Per-field degradation: bad numerics fall back individually.
	second := lib.Tracks[1]
	assert.Nil(t, second.BPM)
	assert.Nil(t, second.Year)
	assert.Equal(t, 300, second.Duration())

	// Native TrackIDs never leak into persistent identity.
	assert.NotEqual(t, "101", first.ID)

	// One playlist resolved; the node with zero resolved tracks is skipped.
	assert.Equal(t, 1, meta.PlaylistCount)
	require.Len(t, lib.Playlists, 1)
	for _, pl := range lib.Playlists {
		assert.Equal(t, "Warmup", pl.Name)
		tracks, ok := lib.PlaylistTracks(pl.ID)
		require.True(t, ok)
		require.Len(t, tracks, 2)
		// Membership order follows the node's TRACK order.
		assert.Equal(t, "Born Slippy", tracks[0].Title)
		assert.Equal(t, "One More Time", tracks[1].Title)
	}
}

func TestRekordboxParseFileURILocation(t *testing.T) {
	content := `<DJ_PLAYLISTS><COLLECTION>
	<TRACK TrackID="1" Name="A" Location="file://localhost/music/a.mp3" />
	</COLLECTION></DJ_PLAYLISTS>`

	lib, _, err := NewRekordboxParser().Parse("c.xml", []byte(content))
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 1)
	assert.Equal(t, "/music/a.mp3", lib.Tracks[0].FilePath)
}

func TestRekordboxParseMalformedXML(t *testing.T) {
	content := `<DJ_PLAYLISTS><COLLECTION><TRACK Name="broken">`

	_, _, err := NewRekordboxParser().Parse("broken.xml", []byte(content))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, FormatRekordbox, parseErr.Format)
}

func TestRekordboxRenderEscapesMarkup(t *testing.T) {
	tracks := []*domain.Track{
		{Title: `<script>alert('x')</script>`, Artist: `Artist & "Co"`, FilePath: "/music/a.mp3"},
	}

	out, err := NewRekordboxRenderer().Render(tracks)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Artist &amp; &quot;Co&quot;")
}

func TestRekordboxRenderPlaylistBySequence(t *testing.T) {
	tracks := []*domain.Track{
		{Title: "A", FilePath: "/a.mp3"},
		{Title: "B", FilePath: "/b.mp3"},
	}

	out, err := NewRekordboxRenderer().Render(tracks)
	require.NoError(t, err)
	assert.Contains(t, out, `TrackID="1"`)
	assert.Contains(t, out, `TrackID="2"`)
	assert.Contains(t, out, `<NODE Name="Exported" Type="1">`)
	assert.Contains(t, out, `<TRACK Key="1" />`)
	assert.Contains(t, out, `<TRACK Key="2" />`)
}

func TestRekordboxRenderEmptyIsWellFormed(t *testing.T) {
	out, err := NewRekordboxRenderer().Render(nil)
	require.NoError(t, err)

	lib, _, err := NewRekordboxParser().Parse("empty.xml", []byte(out))
	require.NoError(t, err)
	assert.Empty(t, lib.Tracks)
}
