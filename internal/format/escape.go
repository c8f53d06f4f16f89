package format

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes the five XML special characters for use in
// attribute values and text content.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// guardCSVFormula neutralizes spreadsheet formula injection. A value
// whose first character, after leading spaces and newlines, is one of
// = + - @ TAB CR gets a single-quote prefix so spreadsheet software
// treats it as text.
func guardCSVFormula(s string) string {
	trimmed := strings.TrimLeft(s, " \n")
	if trimmed == "" {
		return s
	}
	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
