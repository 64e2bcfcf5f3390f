package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageDraft_CountBlocks(t *testing.T) {
	draft := PageDraft{
		Title: "Outline",
		Blocks: []BlockDraft{
			{Type: BlockType{Kind: BlockKindBulletList}, Content: "a", Children: []BlockDraft{
				{Type: BlockType{Kind: BlockKindBulletList}, Content: "a.1"},
				{Type: BlockType{Kind: BlockKindBulletList}, Content: "a.2", Children: []BlockDraft{
					{Type: BlockType{Kind: BlockKindText}, Content: "a.2.i"},
				}},
			}},
			{Type: BlockType{Kind: BlockKindDivider}},
		},
	}

	assert.Equal(t, 5, draft.CountBlocks())
	assert.Equal(t, 0, (&PageDraft{}).CountBlocks())
}

func TestRawDocument_BaseTitle(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"/notes/weekly-review_2024.md", "weekly review 2024"},
		{"/path/to/document.txt", "document"},
		{"README", "README"},
		{"archive.tar.gz", "archive.tar"},
		{"", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			doc := &RawDocument{URI: tt.uri}
			assert.Equal(t, tt.want, doc.BaseTitle())
		})
	}
}
