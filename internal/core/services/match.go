package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// span is a half-open [start, end) byte range within a string.
type span struct {
	start int
	end   int
}

// findAllMatches returns every position where query occurs in content.
//
// Offsets are byte offsets into content and always fall on character
// boundaries. After a candidate at start the scan resumes one character
// later, so occurrences that overlap a previous one are reported too.
// In whole-word mode a candidate is kept only when the bytes either side of
// it are not ASCII letters or digits.
func findAllMatches(content, query string, caseSensitive, wholeWord bool) []span {
	if query == "" {
		return nil
	}

	haystack, needle := content, query
	if !caseSensitive {
		haystack, needle = foldCase(content), foldCase(query)
	}

	var matches []span
	for start := 0; start < len(haystack); {
		pos := strings.Index(haystack[start:], needle)
		if pos < 0 {
			break
		}
		abs := start + pos
		end := abs + len(needle)

		if !wholeWord || isWordBounded(content, abs, end) {
			matches = append(matches, span{start: abs, end: end})
		}

		_, width := utf8.DecodeRuneInString(haystack[abs:])
		start = abs + width
	}

	return matches
}

// isWordBounded reports whether [start, end) is not adjacent to an ASCII
// alphanumeric byte. String edges always count as boundaries.
func isWordBounded(content string, start, end int) bool {
	if start > 0 && isASCIIAlnum(content[start-1]) {
		return false
	}
	if end < len(content) && isASCIIAlnum(content[end]) {
		return false
	}
	return true
}

func isASCIIAlnum(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// foldCase lowercases s without changing its byte length, so offsets into
// the result are offsets into s. Characters whose lowercase form encodes to
// a different number of bytes, and invalid bytes, are kept as they are.
func foldCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			b.WriteByte(c)
			i++
			continue
		}

		r, width := utf8.DecodeRuneInString(s[i:])
		if lower := unicode.ToLower(r); r != utf8.RuneError && utf8.RuneLen(lower) == width {
			b.WriteRune(lower)
		} else {
			b.WriteString(s[i : i+width])
		}
		i += width
	}

	return b.String()
}
