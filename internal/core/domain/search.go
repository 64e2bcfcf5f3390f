package domain

import "fmt"

// TitleBlockLabel is the block type label of a page title match.
const TitleBlockLabel = "Title"

// TitleOrder is the order reported for page title matches, ahead of any block.
const TitleOrder = -1

// DefaultSnippetContext is the number of bytes kept on each side of a match.
const DefaultSnippetContext = 40

// SearchOptions configures a search query.
type SearchOptions struct {
	// CaseSensitive disables case folding.
	CaseSensitive bool

	// WholeWord rejects matches touching an alphanumeric character.
	WholeWord bool
}

// SearchableBlock is one row of the block/page join scanned by search.
type SearchableBlock struct {
	BlockID   string
	PageID    string
	Type      BlockType
	Content   string
	Order     int
	PageTitle string
	PageIcon  *string
}

// SearchMatch is a single occurrence of the query inside a block or title.
type SearchMatch struct {
	// BlockID is the owning block, or "title-<page id>" for title matches.
	BlockID string `json:"block_id"`

	// Content is the full text the match was found in.
	Content string `json:"content"`

	// BlockType is the display label of the block type.
	BlockType string `json:"block_type"`

	// MatchStart is the byte offset of the match in Content.
	MatchStart int `json:"match_start"`

	// MatchEnd is the exclusive byte offset of the match end.
	MatchEnd int `json:"match_end"`

	// Snippet is the excerpt shown to the user.
	Snippet string `json:"snippet"`

	// Order is the block order, or TitleOrder for title matches.
	Order int `json:"order"`
}

// IsTitle reports whether the match is a page title pseudo-match.
func (m *SearchMatch) IsTitle() bool {
	return m.BlockType == TitleBlockLabel && m.Order == TitleOrder
}

// TitleBlockID returns the pseudo block id used for title matches of a page.
func TitleBlockID(pageID string) string {
	return fmt.Sprintf("title-%s", pageID)
}

// SearchFileGroup holds every match belonging to one page.
type SearchFileGroup struct {
	PageID    string        `json:"page_id"`
	PageTitle string        `json:"page_title"`
	PageIcon  *string       `json:"page_icon"`
	Matches   []SearchMatch `json:"matches"`
}

// SearchResponse is the result of a search.
type SearchResponse struct {
	Groups       []SearchFileGroup `json:"groups"`
	TotalMatches int               `json:"total_matches"`
}

// EmptySearchResponse returns a response with zero groups and matches.
func EmptySearchResponse() *SearchResponse {
	return &SearchResponse{Groups: []SearchFileGroup{}}
}
