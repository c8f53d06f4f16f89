package domain

import "github.com/google/uuid"

// Playlist is a named, ordered sequence of track references. Entries
// hold track ids only, so metadata edits on a track are visible to
// every playlist that references it. A track may appear more than once.
type Playlist struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	TrackIDs []string `json:"track_ids"`
}

// Library is the root aggregate produced by one import. It owns its
// tracks and playlists; tracks keep insertion order and are also
// addressable by id.
type Library struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Tracks    []*Track             `json:"tracks"`
	Playlists map[string]*Playlist `json:"playlists"`

	byID map[string]*Track
}

// NewLibrary creates an empty library with a fresh id. The name is
// typically the filename the library was imported from.
func NewLibrary(name string) *Library {
	return &Library{
		ID:        uuid.NewString(),
		Name:      name,
		Playlists: make(map[string]*Playlist),
		byID:      make(map[string]*Track),
	}
}

// AddTrack appends a track and indexes it by id.
func (l *Library) AddTrack(t *Track) {
	l.Tracks = append(l.Tracks, t)
	if l.byID == nil {
		l.byID = make(map[string]*Track)
	}
	l.byID[t.ID] = t
}

// Track returns the track with the given id, if present.
func (l *Library) Track(id string) (*Track, bool) {
	t, ok := l.byID[id]
	return t, ok
}

// AddPlaylist creates a playlist with a fresh id referencing the given
// track ids in order, and returns the new playlist id.
func (l *Library) AddPlaylist(name string, trackIDs []string) string {
	pid := uuid.NewString()
	ids := make([]string, len(trackIDs))
	copy(ids, trackIDs)
	l.Playlists[pid] = &Playlist{ID: pid, Name: name, TrackIDs: ids}
	return pid
}

// Playlist returns the playlist with the given id, if present.
func (l *Library) Playlist(id string) (*Playlist, bool) {
	p, ok := l.Playlists[id]
	return p, ok
}

// PlaylistTracks resolves a playlist's membership to tracks in the
// playlist's stored order. Repeated ids yield repeated tracks; ids
// that no longer resolve are skipped.
func (l *Library) PlaylistTracks(playlistID string) ([]*Track, bool) {
	p, ok := l.Playlists[playlistID]
	if !ok {
		return nil, false
	}
	tracks := make([]*Track, 0, len(p.TrackIDs))
	for _, id := range p.TrackIDs {
		if t, ok := l.byID[id]; ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, true
}
