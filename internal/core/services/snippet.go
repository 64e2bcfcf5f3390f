package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "..."

// buildSnippet returns the text around a match, at most context bytes on
// either side, with "..." marking the sides where content was cut.
// Whitespace at the outer edges of the window is trimmed; the match itself
// is never trimmed or split. Offsets outside content are clamped.
func buildSnippet(content string, start, length, context int) string {
	if context < 0 {
		context = 0
	}
	start = clampOffset(start, len(content))
	end := clampOffset(start+max(length, 0), len(content))

	from := max(start-context, 0)
	to := min(end+context, len(content))

	// Move the window inwards onto character boundaries.
	for from < start && !utf8.RuneStart(content[from]) {
		from++
	}
	for to > end && to < len(content) && !utf8.RuneStart(content[to]) {
		to--
	}

	var b strings.Builder
	if from > 0 {
		b.WriteString(ellipsis)
	}

	b.WriteString(strings.TrimLeftFunc(content[from:start], unicode.IsSpace))
	b.WriteString(content[start:end])
	b.WriteString(strings.TrimRightFunc(content[end:to], unicode.IsSpace))

	if to < len(content) {
		b.WriteString(ellipsis)
	}

	return b.String()
}

func clampOffset(off, n int) int {
	if off < 0 {
		return 0
	}
	if off > n {
		return n
	}
	return off
}
