package format

import (
	"fmt"
	"strings"

	"github.com/beatporter/beatporter/internal/domain"
)

// UnknownTrackPlaceholder is emitted when no display strategy yields a
// non-empty name for a track.
const UnknownTrackPlaceholder = "Unknown Track"

// displayNameStrategies is the ordered fallback chain for a track's
// display line: artist - title, title only, artist only, filename from
// path, then the placeholder. The order is a contract.
var displayNameStrategies = []func(*domain.Track) string{
	func(t *domain.Track) string {
		if t.Artist != "" && t.Title != "" {
			return t.Artist + " - " + t.Title
		}
		return ""
	},
	func(t *domain.Track) string { return t.Title },
	func(t *domain.Track) string { return t.Artist },
	func(t *domain.Track) string {
		if t.FilePath == "" {
			return ""
		}
		return lastPathSegment(t.FilePath)
	},
	func(t *domain.Track) string { return UnknownTrackPlaceholder },
}

// DisplayName returns a track's display line per the fallback chain.
func DisplayName(t *domain.Track) string {
	for _, strategy := range displayNameStrategies {
		if name := strategy(t); name != "" {
			return name
		}
	}
	return UnknownTrackPlaceholder
}

// TracklistRenderer emits a plain-text numbered tracklist. It has no
// structural schema to preserve; only the fallback chain matters.
type TracklistRenderer struct{}

func NewTracklistRenderer() *TracklistRenderer {
	return &TracklistRenderer{}
}

func (r *TracklistRenderer) Name() string { return string(FormatTracklist) }

func (r *TracklistRenderer) Render(tracks []*domain.Track) (string, error) {
	var b strings.Builder
	for i, t := range tracks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, DisplayName(t))
	}
	return b.String(), nil
}
