package format

import "strings"

// Header keywords a first CSV line must contain before the file is
// classified as a Serato export. A bare comma-separated file without
// one of these is not a DJ library.
var csvHeaderKeywords = []string{"Title", "Artist", "File", "Key", "BPM"}

// Detect classifies an upload by filename extension first, then by
// content sniffing. It never fails: anything ambiguous is
// FormatUnknown. Content is decoded permissively, so arbitrary byte
// sequences are safe to pass in.
func Detect(filename string, content []byte) Format {
	lower := strings.ToLower(filename)
	text := strings.ToValidUTF8(string(content), "�")

	switch {
	case strings.HasSuffix(lower, ".m3u"), strings.HasSuffix(lower, ".m3u8"):
		return FormatM3U
	case strings.HasSuffix(lower, ".nml"):
		return FormatTraktor
	case strings.HasSuffix(lower, ".xml"):
		if strings.Contains(text, "DJ_PLAYLISTS") {
			return FormatRekordbox
		}
		if strings.Contains(text, "<NML") {
			return FormatTraktor
		}
		return FormatUnknown
	case strings.HasSuffix(lower, ".csv"):
		if firstLineContainsAny(text, csvHeaderKeywords) {
			return FormatSerato
		}
		return FormatUnknown
	}

	if strings.Contains(text, "#EXTM3U") {
		return FormatM3U
	}
	if strings.Contains(text, "<DJ_PLAYLISTS") {
		return FormatRekordbox
	}
	if strings.Contains(text, "<NML") {
		return FormatTraktor
	}

	// Loose CSV heuristic as a last resort: a comma plus a known
	// header keyword on the first line.
	if firstLine(text) != "" && strings.Contains(firstLine(text), ",") &&
		firstLineContainsAny(text, csvHeaderKeywords) {
		return FormatSerato
	}

	return FormatUnknown
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

func firstLineContainsAny(text string, keywords []string) bool {
	line := firstLine(text)
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
