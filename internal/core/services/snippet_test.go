package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSnippet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   int
		length  int
		context int
		want    string
	}{
		{"whole content fits", "hello world foo", 6, 5, 40, "hello world foo"},
		{"cut both sides", "hello world foo", 6, 5, 2, "...o world f..."},
		{"zero context", "hello world foo", 6, 5, 0, "...world..."},
		{"match at start", "hello world", 0, 5, 0, "hello..."},
		{"match at end", "hello world", 6, 5, 0, "...world"},
		{"trims outer whitespace", "aaa   match   bbb", 6, 5, 3, "...match..."},
		{"start past end", "abc", 10, 2, 5, "abc"},
		{"negative start", "abc", -3, 1, 0, "a..."},
		{"length past end", "abc", 1, 10, 0, "...bc"},
		{"negative context", "abc", 1, 1, -1, "...b..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSnippet(tt.content, tt.start, tt.length, tt.context))
		})
	}
}

func TestBuildSnippet_KeepsMatchWhitespace(t *testing.T) {
	content := "before  mid  after"
	start := strings.Index(content, "  mid  ")
	assert.Equal(t, "...  mid  ...", buildSnippet(content, start, len("  mid  "), 0))
}

func TestBuildSnippet_MultibyteBoundaries(t *testing.T) {
	content := "héllo wörld"
	start := strings.Index(content, "wörld")

	assert.Equal(t, "...o wörld", buildSnippet(content, start, len("wörld"), 2))
	// A window edge inside é moves inward to the next character.
	assert.Equal(t, "...llo wörld", buildSnippet(content, start, len("wörld"), 5))

	content = "wörld ünd mehr"
	assert.Equal(t, "wörld ü...", buildSnippet(content, 0, len("wörld"), 3))
}

func TestBuildSnippet_ContainsMatch(t *testing.T) {
	content := strings.Repeat("lorem ipsum ", 20) + "needle" + strings.Repeat(" dolor sit", 20)
	start := strings.Index(content, "needle")

	snippet := buildSnippet(content, start, len("needle"), 40)
	assert.Contains(t, snippet, "needle")
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.LessOrEqual(t, len(snippet), 40+len("needle")+40+2*len("..."))
}
