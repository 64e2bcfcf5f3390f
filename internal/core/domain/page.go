package domain

import "time"

// Page represents a hierarchical document. Pages without a parent are roots.
type Page struct {
	// ID is the string form of a UUID.
	ID string

	// Title is the human-readable title.
	Title string

	// Icon is an optional icon reference (emoji or asset file name).
	Icon *string

	// Cover is an optional cover image reference.
	Cover *string

	// ParentID links to the parent page for nested pages.
	ParentID *string

	// Archived pages are hidden from listing, child lookup and search.
	Archived bool

	// CreatedAt is when the page was created.
	CreatedAt time.Time

	// UpdatedAt is when the page was last modified.
	UpdatedAt time.Time
}

// IsRoot reports whether the page sits at the top of the tree.
func (p *Page) IsRoot() bool {
	return p.ParentID == nil
}
