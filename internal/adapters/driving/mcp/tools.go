package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query         string `json:"query" jsonschema:"the exact text to find in page titles and blocks"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match letter case exactly (default false)"`
	WholeWord     bool   `json:"whole_word,omitempty" jsonschema:"only match occurrences not touching a letter or digit (default false)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Pages        []SearchPageOutput `json:"pages"`
	TotalMatches int                `json:"total_matches"`
}

// SearchPageOutput groups the matches found in one page.
type SearchPageOutput struct {
	PageID    string              `json:"page_id"`
	PageTitle string              `json:"page_title"`
	PageIcon  string              `json:"page_icon,omitempty"`
	URI       string              `json:"uri"`
	Matches   []SearchMatchOutput `json:"matches"`
}

// SearchMatchOutput represents a single occurrence.
type SearchMatchOutput struct {
	BlockID    string `json:"block_id"`
	BlockType  string `json:"block_type"`
	Snippet    string `json:"snippet"`
	MatchStart int    `json:"match_start"`
	MatchEnd   int    `json:"match_end"`
	IsTitle    bool   `json:"is_title,omitempty"`
}

// ReplaceInput is the input schema for the replace_in_block tool.
type ReplaceInput struct {
	BlockID       string `json:"block_id" jsonschema:"the id of the block to edit"`
	Search        string `json:"search" jsonschema:"the text to replace; must not be empty"`
	Replacement   string `json:"replacement" jsonschema:"the text inserted in place of every occurrence"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match letter case exactly (default false)"`
}

// ReplaceOutput is the output schema for the replace_in_block tool.
type ReplaceOutput struct {
	BlockID string `json:"block_id"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find exact text across every page title and block, grouped by page",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "replace_in_block",
		Description: "Replace every occurrence of a string in one block and return the new content",
	}, s.handleReplace)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		CaseSensitive: input.CaseSensitive,
		WholeWord:     input.WholeWord,
	}
	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Pages:        make([]SearchPageOutput, len(resp.Groups)),
		TotalMatches: resp.TotalMatches,
	}

	for i := range resp.Groups {
		group := &resp.Groups[i]
		page := SearchPageOutput{
			PageID:    group.PageID,
			PageTitle: group.PageTitle,
			URI:       pageURI(group.PageID),
			Matches:   make([]SearchMatchOutput, len(group.Matches)),
		}
		if group.PageIcon != nil {
			page.PageIcon = *group.PageIcon
		}
		for j := range group.Matches {
			m := &group.Matches[j]
			page.Matches[j] = SearchMatchOutput{
				BlockID:    m.BlockID,
				BlockType:  m.BlockType,
				Snippet:    m.Snippet,
				MatchStart: m.MatchStart,
				MatchEnd:   m.MatchEnd,
				IsTitle:    m.IsTitle(),
			}
		}
		output.Pages[i] = page
	}

	return nil, output, nil
}

// handleReplace handles the replace_in_block tool invocation.
func (s *Server) handleReplace(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReplaceInput,
) (*mcp.CallToolResult, ReplaceOutput, error) {
	content, err := s.ports.Search.ReplaceInBlock(ctx, input.BlockID, input.Search, input.Replacement, input.CaseSensitive)
	if err != nil {
		return nil, ReplaceOutput{}, err
	}
	return nil, ReplaceOutput{BlockID: input.BlockID, Content: content}, nil
}
