package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

const (
	uriScheme = "bismuth://"

	blocksSuffix   = "/blocks"
	markdownSuffix = "/markdown"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "pages",
		Name:        "pages",
		Description: "All pages that are not archived, newest first",
		MIMEType:    "application/json",
	}, s.handlePagesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageId}/blocks",
		Name:        "page-blocks",
		Description: "Ordered blocks of a specific page",
		MIMEType:    "application/json",
	}, s.handleBlocksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageId}/markdown",
		Name:        "page-markdown",
		Description: "A page rendered as Markdown with YAML front matter",
		MIMEType:    "text/markdown",
	}, s.handleMarkdownResource)
}

type pageInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Icon     *string `json:"icon,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	URI      string  `json:"uri"`
}

type blockInfo struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
	Order    int     `json:"order"`
	Checked  *bool   `json:"checked,omitempty"`
	Language string  `json:"language,omitempty"`
	PageID   string  `json:"page_id,omitempty"`
}

// handlePagesResource returns every non-archived page.
func (s *Server) handlePagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	pages, err := s.ports.Page.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	infos := make([]pageInfo, len(pages))
	for i := range pages {
		infos[i] = pageInfo{
			ID:       pages[i].ID,
			Title:    pages[i].Title,
			Icon:     pages[i].Icon,
			ParentID: pages[i].ParentID,
			URI:      pageURI(pages[i].ID),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleBlocksResource returns the blocks of one page.
func (s *Server) handleBlocksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Block == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pageID := extractPageID(req.Params.URI, blocksSuffix)
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	blocks, err := s.ports.Block.ListByPage(ctx, pageID)
	if err != nil {
		if isMissing(err) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("listing blocks: %w", err)
	}

	infos := make([]blockInfo, len(blocks))
	for i := range blocks {
		infos[i] = toBlockInfo(&blocks[i])
	}

	return jsonResult(req.Params.URI, infos)
}

// handleMarkdownResource returns one page rendered as Markdown.
func (s *Server) handleMarkdownResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Export == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pageID := extractPageID(req.Params.URI, markdownSuffix)
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	md, err := s.ports.Export.Markdown(ctx, pageID)
	if err != nil {
		if isMissing(err) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("exporting page: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     md,
		}},
	}, nil
}

func toBlockInfo(b *domain.Block) blockInfo {
	info := blockInfo{
		ID:       b.ID,
		Type:     b.Type.Label(),
		Content:  b.Content,
		ParentID: b.ParentID,
		Order:    b.Order,
	}
	switch b.Type.Kind {
	case domain.BlockKindTodo:
		checked := b.Type.Checked
		info.Checked = &checked
	case domain.BlockKindCode:
		info.Language = b.Type.Language
	case domain.BlockKindSubPage, domain.BlockKindPageLink:
		info.PageID = b.Type.PageID
	}
	return info
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// isMissing reports errors that mean the page id does not resolve.
func isMissing(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput)
}

// pageURI returns the resource URI identifying a page.
func pageURI(id string) string {
	return uriScheme + "pages/" + id
}

// extractPageID extracts the page ID from a URI like bismuth://pages/{pageId}/blocks.
func extractPageID(uri, suffix string) string {
	const prefix = uriScheme + "pages/"

	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, suffix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
