// Package fileproc turns uploaded files into the plain text the
// extraction pipeline consumes.
package fileproc

import (
	"regexp"
	"strings"
)

var (
	newlineRuns = regexp.MustCompile(`\n+`)
	spaceRuns   = regexp.MustCompile(` +`)

	// strayChars removes noise characters while keeping the punctuation
	// that matters in legal text.
	strayChars = regexp.MustCompile(`[^\w\s\-.,;:!?()'"$%]`)
)

// CleanText normalizes extracted document text: collapses repeated
// newlines and spaces, strips noise characters and unifies line endings.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = strayChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
