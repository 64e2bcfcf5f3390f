package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAllMatches(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		query         string
		caseSensitive bool
		wholeWord     bool
		want          []span
	}{
		{"case insensitive", "cat CAT cats", "cat", false, false, []span{{0, 3}, {4, 7}, {8, 11}}},
		{"case sensitive", "cat CAT cats", "cat", true, false, []span{{0, 3}, {8, 11}}},
		{"whole word", "cat CAT cats", "cat", false, true, []span{{0, 3}, {4, 7}}},
		{"whole word case sensitive", "cat CAT cats", "CAT", true, true, []span{{4, 7}}},
		{"overlapping", "aaaa", "aa", true, false, []span{{0, 2}, {1, 3}, {2, 4}}},
		{"no match", "hello", "xyz", false, false, nil},
		{"empty query", "hello", "", false, false, nil},
		{"empty content", "", "a", false, false, nil},
		{"query longer than content", "ab", "abc", false, false, nil},
		{"underscore is a boundary", "foo_bar", "foo", false, true, []span{{0, 3}}},
		{"digit is not a boundary", "foo1 foo", "foo", false, true, []span{{5, 8}}},
		{"punctuation boundaries", "(world)!", "world", false, true, []span{{1, 6}}},
		{"multibyte fold", "Ünïcode ünïcode", "ÜNÏ", false, false, []span{{0, 5}, {10, 15}}},
		{"multibyte case sensitive", "Ünïcode ünïcode", "ünï", true, false, []span{{10, 15}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findAllMatches(tt.content, tt.query, tt.caseSensitive, tt.wholeWord)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAllMatches_OffsetsSliceOriginal(t *testing.T) {
	content := "Grüße aus KÖLN und köln"
	for _, m := range findAllMatches(content, "köln", false, false) {
		assert.Equal(t, "köln", foldCase(content[m.start:m.end]))
	}
}

func TestFoldCase_PreservesLength(t *testing.T) {
	inputs := []string{
		"Hello World",
		"ÄÖÜ äöü",
		"İSTANBUL",
		"ẞ",
		"\xff\xfeABC",
		"日本語 TEXT",
	}

	for _, in := range inputs {
		out := foldCase(in)
		assert.Len(t, out, len(in), "input %q", in)
	}

	assert.Equal(t, "hello world", foldCase("Hello World"))
	assert.Equal(t, "äöü", foldCase("ÄÖÜ"))
	assert.Equal(t, "İstanbul", foldCase("İSTANBUL"))
}

func TestIsWordBounded(t *testing.T) {
	assert.True(t, isWordBounded("cat", 0, 3))
	assert.True(t, isWordBounded("a cat.", 2, 5))
	assert.False(t, isWordBounded("cats", 0, 3))
	assert.False(t, isWordBounded("bobcat", 3, 6))
}
