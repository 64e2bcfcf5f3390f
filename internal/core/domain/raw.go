package domain

import (
	"path/filepath"
	"strings"
)

// RawDocument is an external file handed to a normaliser for import.
type RawDocument struct {
	// URI is the original location, usually a file path.
	URI string

	// MIMEType is the content type, e.g. "text/markdown".
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// BaseTitle derives a title from the file name in URI: the extension is
// dropped and underscores and dashes become spaces.
func (d *RawDocument) BaseTitle() string {
	name := filepath.Base(d.URI)
	if name == "." || name == "/" {
		return ""
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}

// BlockDraft is a block that has not been stored yet.
type BlockDraft struct {
	Type     BlockType
	Content  string
	Children []BlockDraft
}

// PageDraft is a normalised document ready to become a page.
type PageDraft struct {
	Title  string
	Icon   *string
	Cover  *string
	Blocks []BlockDraft
}

// CountBlocks returns the number of drafts including nested children.
func (p *PageDraft) CountBlocks() int {
	return countDrafts(p.Blocks)
}

func countDrafts(drafts []BlockDraft) int {
	n := len(drafts)
	for i := range drafts {
		n += countDrafts(drafts[i].Children)
	}
	return n
}
