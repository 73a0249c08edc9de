package service

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|li|h[1-6]|pre|blockquote|tr)>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
)

// PlainText flattens rendered message HTML into readable text: line breaks
// and block ends become newlines, tags are dropped, entities are decoded.
func PlainText(s string) string {
	s = htmlBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// IsTrivialContent checks if the text is just a placeholder the backend
// sends before real content.
func IsTrivialContent(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	return lower == "in progress..." ||
		lower == "thinking..." ||
		lower == "working..."
}

// ContentDelta returns the part of cur not yet printed. If cur no longer
// extends what was printed, restart is true and the full text is returned.
func ContentDelta(printed, cur string) (delta string, restart bool) {
	if strings.HasPrefix(cur, printed) {
		return cur[len(printed):], false
	}
	return cur, true
}
