package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/beatporter/beatporter/internal/domain"
	"github.com/beatporter/beatporter/internal/format"
)

// Bundle renders the given tracks in every requested format and
// packages the results into a single zip archive. Entry names are
// derived from baseName plus each format's conventional extension.
func Bundle(baseName string, tracks []*domain.Track, formats []format.Format) ([]byte, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("no formats requested")
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	base := SanitizeFilename(baseName)
	for _, f := range formats {
		renderer, err := format.RendererFor(f)
		if err != nil {
			return nil, err
		}
		content, err := renderer.Render(tracks)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", f, err)
		}

		entry, err := zipWriter.Create(fmt.Sprintf("%s.%s", base, format.Extension(f)))
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry for %s: %w", f, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("failed to write zip entry for %s: %w", f, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// SanitizeFilename replaces characters that are invalid in filenames
// with underscores and guarantees a non-empty result.
func SanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "\n", "\r", "\t"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.Trim(result, " .")
	if result == "" {
		result = "library"
	}
	return result
}
