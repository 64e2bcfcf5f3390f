package domain

import (
	"fmt"
	"time"
)

// BlockKind identifies the variant of a BlockType.
type BlockKind string

// Supported block kinds.
const (
	BlockKindText         BlockKind = "text"
	BlockKindHeading1     BlockKind = "heading1"
	BlockKindHeading2     BlockKind = "heading2"
	BlockKindHeading3     BlockKind = "heading3"
	BlockKindBulletList   BlockKind = "bullet_list"
	BlockKindNumberedList BlockKind = "numbered_list"
	BlockKindTodo         BlockKind = "todo"
	BlockKindCode         BlockKind = "code"
	BlockKindQuote        BlockKind = "quote"
	BlockKindDivider      BlockKind = "divider"
	BlockKindSubPage      BlockKind = "sub_page"
	BlockKindPageLink     BlockKind = "page_link"
)

// blockLabels maps each kind to the label shown in search results.
var blockLabels = map[BlockKind]string{
	BlockKindText:         "Text",
	BlockKindHeading1:     "Heading1",
	BlockKindHeading2:     "Heading2",
	BlockKindHeading3:     "Heading3",
	BlockKindBulletList:   "BulletList",
	BlockKindNumberedList: "NumberedList",
	BlockKindTodo:         "Todo",
	BlockKindCode:         "Code",
	BlockKindQuote:        "Quote",
	BlockKindDivider:      "Divider",
	BlockKindSubPage:      "SubPage",
	BlockKindPageLink:     "PageLink",
}

// BlockKinds returns every supported kind in display order.
func BlockKinds() []BlockKind {
	return []BlockKind{
		BlockKindText, BlockKindHeading1, BlockKindHeading2, BlockKindHeading3,
		BlockKindBulletList, BlockKindNumberedList, BlockKindTodo, BlockKindCode,
		BlockKindQuote, BlockKindDivider, BlockKindSubPage, BlockKindPageLink,
	}
}

// ParseBlockKind converts a kind name into a BlockKind.
func ParseBlockKind(s string) (BlockKind, error) {
	k := BlockKind(s)
	if _, ok := blockLabels[k]; !ok {
		return "", fmt.Errorf("%w: unknown block type %q", ErrInvalidInput, s)
	}
	return k, nil
}

// BlockType is a tagged variant. Only the payload field belonging to Kind
// is meaningful: Checked for todo, Language for code, PageID for sub_page
// and page_link.
type BlockType struct {
	Kind     BlockKind
	Checked  bool
	Language string
	PageID   string
}

// Label returns the display label of the variant, e.g. "Heading1".
func (t BlockType) Label() string {
	if l, ok := blockLabels[t.Kind]; ok {
		return l
	}
	return string(t.Kind)
}

// ReferencesPage reports whether the variant carries a page reference.
func (t BlockType) ReferencesPage() bool {
	return t.Kind == BlockKindSubPage || t.Kind == BlockKindPageLink
}

// Validate checks the kind is known and that page references are present.
func (t BlockType) Validate() error {
	if _, ok := blockLabels[t.Kind]; !ok {
		return fmt.Errorf("%w: unknown block type %q", ErrInvalidInput, t.Kind)
	}
	if t.ReferencesPage() && t.PageID == "" {
		return fmt.Errorf("%w: %s block requires a page id", ErrInvalidInput, t.Kind)
	}
	return nil
}

// Block is an ordered content unit belonging to a page.
type Block struct {
	// ID is the string form of a UUID.
	ID string

	// PageID links to the owning Page.
	PageID string

	// Type describes how the block renders.
	Type BlockType

	// Content is the free-text body.
	Content string

	// ParentID links to a parent block for nested blocks.
	ParentID *string

	// Order is the position among siblings, ascending.
	Order int

	// CreatedAt is when the block was created.
	CreatedAt time.Time

	// UpdatedAt is when the block was last modified.
	UpdatedAt time.Time
}

// SameParent reports whether the block is nested under parentID.
// A nil parentID selects top-level blocks.
func (b *Block) SameParent(parentID *string) bool {
	if b.ParentID == nil || parentID == nil {
		return b.ParentID == nil && parentID == nil
	}
	return *b.ParentID == *parentID
}
