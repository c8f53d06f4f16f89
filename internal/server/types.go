package server

// ImportResponse summarizes a successful library import.
type ImportResponse struct {
	LibraryID     string `json:"library_id"`
	SourceFormat  string `json:"source_format"`
	TrackCount    int    `json:"track_count"`
	PlaylistCount int    `json:"playlist_count"`
}

// LibraryResponse summarizes a registered library.
type LibraryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TrackCount    int    `json:"track_count"`
	PlaylistCount int    `json:"playlist_count"`
}

// PlaylistResponse summarizes a playlist.
type PlaylistResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"track_count"`
}

// RewritePathsRequest is a substring search/replace over file paths.
type RewritePathsRequest struct {
	Search  string `json:"search" binding:"required"`
	Replace string `json:"replace"`
}

// RewriteExample shows one path before and after a rewrite.
type RewriteExample struct {
	TrackID string `json:"track_id"`
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// RewritePreviewResponse reports the reach of a path rewrite without
// applying it.
type RewritePreviewResponse struct {
	TotalTracks    int              `json:"total_tracks"`
	AffectedTracks int              `json:"affected_tracks"`
	Examples       []RewriteExample `json:"examples"`
}

// MetadataAutoFixRequest selects which normalizations to apply.
type MetadataAutoFixRequest struct {
	NormalizeWhitespace bool `json:"normalize_whitespace"`
	UpperCaseKeys       bool `json:"upper_case_keys"`
	ZeroYearToNull      bool `json:"zero_year_to_null"`
}

// SmartPlaylistParams drives playlist generation. The filter fields
// are only honored by the v2 endpoint.
type SmartPlaylistParams struct {
	TargetMinutes int      `json:"target_minutes"`
	Keyword       string   `json:"keyword"`
	MinBPM        *float64 `json:"min_bpm"`
	MaxBPM        *float64 `json:"max_bpm"`
	MinYear       *int     `json:"min_year"`
	MaxYear       *int     `json:"max_year"`
	Keys          []string `json:"keys"`
	SortBy        string   `json:"sort_by"`
	PlaylistName  string   `json:"playlist_name"`
}

// GeneratedPlaylistResponse reports a generated playlist.
type GeneratedPlaylistResponse struct {
	PlaylistID            string `json:"playlist_id"`
	Name                  string `json:"name"`
	TrackCount            int    `json:"track_count"`
	ApproxDurationMinutes int    `json:"approx_duration_minutes"`
}

// MergePlaylistsRequest concatenates playlists into a new one.
type MergePlaylistsRequest struct {
	SourcePlaylistIDs []string `json:"source_playlist_ids" binding:"required"`
	Name              string   `json:"name" binding:"required"`
	Deduplicate       *bool    `json:"deduplicate"`
}

// ExportBundleRequest selects formats for a zipped multi-format export.
type ExportBundleRequest struct {
	Formats    []string `json:"formats" binding:"required"`
	PlaylistID string   `json:"playlist_id"`
	Persist    bool     `json:"persist"`
}

// TrackUpdateRequest carries a partial metadata edit. Pointer fields
// distinguish "not provided" from explicit zero values; CustomFields
// merge key-by-key and AddTags extends the tag set.
type TrackUpdateRequest struct {
	Title           *string        `json:"title"`
	Artist          *string        `json:"artist"`
	Key             *string        `json:"key"`
	Genre           *string        `json:"genre"`
	BPM             *float64       `json:"bpm"`
	Year            *int           `json:"year"`
	DurationSeconds *int           `json:"duration_seconds"`
	CustomFields    map[string]any `json:"custom_fields"`
	AddTags         []string       `json:"add_tags"`
}

// MessageResponse represents a generic message payload used for success responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents a generic error payload used for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
