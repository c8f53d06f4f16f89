package domain

// DefaultDurationSeconds is substituted whenever a track's duration is
// unknown and a computation needs one (playlist length estimates,
// export formats that require a duration field).
const DefaultDurationSeconds = 300

// Track represents a single media item in a library. Numeric metadata
// is optional: a nil pointer means the source did not carry the field
// or carried an unparseable value.
type Track struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Artist          string         `json:"artist"`
	FilePath        string         `json:"file_path"`
	BPM             *float64       `json:"bpm,omitempty"`
	Key             string         `json:"key,omitempty"`
	Year            *int           `json:"year,omitempty"`
	DurationSeconds *int           `json:"duration_seconds,omitempty"`
	Genre           string         `json:"genre,omitempty"`
	CustomFields    map[string]any `json:"custom_fields,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
}

// Duration returns the track duration in seconds, falling back to
// DefaultDurationSeconds when no usable value is present.
func (t *Track) Duration() int {
	if t.DurationSeconds == nil || *t.DurationSeconds <= 0 {
		return DefaultDurationSeconds
	}
	return *t.DurationSeconds
}

// MergeCustomFields upserts the given fields into the track's custom
// field map. Existing keys are overwritten, other keys are kept.
func (t *Track) MergeCustomFields(fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	if t.CustomFields == nil {
		t.CustomFields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		t.CustomFields[k] = v
	}
}

// AddTags adds the given tags to the track's tag set, ignoring
// duplicates while keeping first-seen order.
func (t *Track) AddTags(tags ...string) {
	seen := make(map[string]struct{}, len(t.Tags))
	for _, tag := range t.Tags {
		seen[tag] = struct{}{}
	}
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		t.Tags = append(t.Tags, tag)
	}
}
