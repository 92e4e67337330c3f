package build

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// Slugify converts a free-form label (e.g. a custom banner text) into a
// filename-friendly slug. It lowercases the input, replaces spaces with
// hyphens, strips characters that are not letters, digits, or hyphens,
// collapses multiple hyphens, and trims leading/trailing hyphens. Unicode
// letters are preserved.
func Slugify(label string) string {
	// Normalize Unicode to NFC form (e.g., combining accents become precomposed).
	s := norm.NFC.String(label)
	s = strings.ToLower(s)

	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var buf strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			buf.WriteRune(r)
		}
	}
	s = buf.String()

	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
