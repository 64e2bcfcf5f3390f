package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// PageURIPrefix prefixes page references in exported documents.
const PageURIPrefix = "bismuth://pages/"

// ExportService renders pages as Markdown documents.
type ExportService struct {
	store driven.ContentStore
}

// NewExportService creates a new export service.
func NewExportService(store driven.ContentStore) *ExportService {
	return &ExportService{store: store}
}

// frontMatter is the YAML header of an exported page.
type frontMatter struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Icon     string    `yaml:"icon,omitempty"`
	Cover    string    `yaml:"cover,omitempty"`
	Parent   string    `yaml:"parent,omitempty"`
	Archived bool      `yaml:"archived,omitempty"`
	Created  time.Time `yaml:"created"`
	Updated  time.Time `yaml:"updated"`
}

// Markdown renders a page. Nested blocks are indented two spaces per level
// under their parent.
func (s *ExportService) Markdown(ctx context.Context, pageID string) (string, error) {
	if err := validateID("page", pageID); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", domain.ErrNotImplemented
	}

	page, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		return "", fmt.Errorf("get page %s: %w", pageID, err)
	}
	blocks, err := s.store.ListBlocks(ctx, pageID)
	if err != nil {
		return "", fmt.Errorf("list blocks of page %s: %w", pageID, err)
	}

	header, err := yaml.Marshal(frontMatter{
		ID:       page.ID,
		Title:    page.Title,
		Icon:     deref(page.Icon),
		Cover:    deref(page.Cover),
		Parent:   deref(page.ParentID),
		Archived: page.Archived,
		Created:  page.CreatedAt,
		Updated:  page.UpdatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	if page.Title != "" {
		b.WriteString("# " + page.Title + "\n")
	}

	children := make(map[string][]domain.Block)
	for _, blk := range blocks {
		parent := deref(blk.ParentID)
		children[parent] = append(children[parent], blk)
	}

	r := renderer{ctx: ctx, store: s.store, children: children, out: &b}
	for _, blk := range children[""] {
		b.WriteString("\n")
		r.block(&blk, 0)
	}

	return b.String(), nil
}

// renderer writes blocks in order; children come from ListBlocks, which is
// already sorted by order.
type renderer struct {
	ctx      context.Context
	store    driven.ContentStore
	children map[string][]domain.Block
	out      *strings.Builder
}

func (r *renderer) block(blk *domain.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, line := range strings.Split(r.line(blk), "\n") {
		if line == "" {
			r.out.WriteString("\n")
			continue
		}
		r.out.WriteString(indent + line + "\n")
	}

	for _, child := range r.children[blk.ID] {
		r.block(&child, depth+1)
	}
}

func (r *renderer) line(blk *domain.Block) string {
	content := blk.Content
	switch blk.Type.Kind {
	case domain.BlockKindHeading1:
		return "# " + content
	case domain.BlockKindHeading2:
		return "## " + content
	case domain.BlockKindHeading3:
		return "### " + content
	case domain.BlockKindBulletList:
		return "- " + content
	case domain.BlockKindNumberedList:
		return "1. " + content
	case domain.BlockKindTodo:
		if blk.Type.Checked {
			return "- [x] " + content
		}
		return "- [ ] " + content
	case domain.BlockKindCode:
		return "```" + blk.Type.Language + "\n" + content + "\n```"
	case domain.BlockKindQuote:
		return "> " + strings.ReplaceAll(content, "\n", "\n> ")
	case domain.BlockKindDivider:
		return "---"
	case domain.BlockKindSubPage, domain.BlockKindPageLink:
		return fmt.Sprintf("[%s](%s%s)", r.linkLabel(blk), PageURIPrefix, blk.Type.PageID)
	default:
		return content
	}
}

// linkLabel prefers the block text, then the linked page title.
func (r *renderer) linkLabel(blk *domain.Block) string {
	if blk.Content != "" {
		return blk.Content
	}
	if page, err := r.store.GetPage(r.ctx, blk.Type.PageID); err == nil && page.Title != "" {
		return page.Title
	}
	return blk.Type.PageID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
