package normalization

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText lowercases the input, collapses every run of whitespace to a
// single space and trims the ends. Transcript text and alias phrases go
// through the same normalization so matching is byte-for-byte.
func NormalizeText(input string) string {
	normalized := strings.ToLower(input)
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
