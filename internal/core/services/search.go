package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
	"github.com/custodia-labs/bismuth/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService provides find and replace over the content store.
type SearchService struct {
	store          driven.ContentStore
	snippetContext int
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.ContentStore) *SearchService {
	return &SearchService{
		store:          store,
		snippetContext: domain.DefaultSnippetContext,
	}
}

// SetSnippetContext sets how many bytes of context surround each match.
// Values below zero are ignored.
func (s *SearchService) SetSnippetContext(n int) {
	if n >= 0 {
		s.snippetContext = n
	}
}

// Search scans every block of every non-archived page, then every page
// title, and groups the matches by page.
//
// Groups appear in the order their page first matched: pages matched in a
// block come first in block scan order, pages matched only by title follow.
// Title matches are placed ahead of the block matches of their page.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, case_sensitive=%t, whole_word=%t", query, opts.CaseSensitive, opts.WholeWord)

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return domain.EmptySearchResponse(), nil
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	blocks, err := s.store.ListSearchableBlocks(ctx)
	if err != nil {
		logger.Warn("Listing blocks failed: %v", err)
		return nil, fmt.Errorf("search: list blocks: %w", err)
	}
	logger.Debug("Scanning %d blocks", len(blocks))

	groups := newGroupSet()
	bodyMatches := 0

	for i := range blocks {
		b := &blocks[i]
		spans := findAllMatches(b.Content, query, opts.CaseSensitive, opts.WholeWord)
		if len(spans) == 0 {
			continue
		}

		label := b.Type.Label()
		matches := lo.Map(spans, func(sp span, _ int) domain.SearchMatch {
			return domain.SearchMatch{
				BlockID:    b.BlockID,
				Content:    b.Content,
				BlockType:  label,
				MatchStart: sp.start,
				MatchEnd:   sp.end,
				Snippet:    buildSnippet(b.Content, sp.start, sp.end-sp.start, s.snippetContext),
				Order:      b.Order,
			}
		})
		bodyMatches += len(matches)
		groups.appendMatches(b.PageID, b.PageTitle, b.PageIcon, matches)
	}
	logger.Debug("Block matches: %d in %d pages", bodyMatches, groups.len())

	pages, err := s.store.ListPages(ctx)
	if err != nil {
		logger.Warn("Listing pages failed: %v", err)
		return nil, fmt.Errorf("search: list pages: %w", err)
	}
	// Pages matching only by title are appended oldest first.
	slices.SortStableFunc(pages, func(a, b domain.Page) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	titleMatches := 0
	for i := range pages {
		p := &pages[i]
		spans := findAllMatches(p.Title, query, opts.CaseSensitive, opts.WholeWord)
		if len(spans) == 0 {
			continue
		}

		blockID := domain.TitleBlockID(p.ID)
		matches := lo.Map(spans, func(sp span, _ int) domain.SearchMatch {
			return domain.SearchMatch{
				BlockID:    blockID,
				Content:    p.Title,
				BlockType:  domain.TitleBlockLabel,
				MatchStart: sp.start,
				MatchEnd:   sp.end,
				Snippet:    p.Title,
				Order:      domain.TitleOrder,
			}
		})
		titleMatches += len(matches)
		groups.prependMatches(p.ID, p.Title, p.Icon, matches)
	}
	logger.Debug("Title matches: %d", titleMatches)

	resp := &domain.SearchResponse{
		Groups:       groups.list(),
		TotalMatches: bodyMatches + titleMatches,
	}
	logger.Info("Search %q: %d matches in %d pages", query, resp.TotalMatches, len(resp.Groups))

	return resp, nil
}

// ReplaceInBlock substitutes every occurrence of search in a block.
// Matching ignores word boundaries. When caseSensitive is false occurrences
// are located case-insensitively and the surrounding text keeps its case.
func (s *SearchService) ReplaceInBlock(
	ctx context.Context, blockID, search, replacement string, caseSensitive bool,
) (string, error) {
	logger.Section("Replace In Block")
	logger.Debug("Block: %s, search=%q, replacement=%q, case_sensitive=%t",
		blockID, search, replacement, caseSensitive)

	if err := validateID("block", blockID); err != nil {
		return "", err
	}
	if search == "" {
		return "", fmt.Errorf("%w: search text is empty", domain.ErrInvalidInput)
	}
	if s.store == nil {
		return "", domain.ErrNotImplemented
	}

	replaced := 0
	content, err := s.store.ModifyBlockContent(ctx, blockID, func(current string) (string, error) {
		var next string
		next, replaced = replaceAll(current, search, replacement, caseSensitive)
		return next, nil
	})
	if err != nil {
		logger.Warn("Replace in block %s failed: %v", blockID, err)
		return "", fmt.Errorf("replace in block %s: %w", blockID, err)
	}

	logger.Info("Replaced %d occurrences in block %s", replaced, blockID)
	return content, nil
}

// replaceAll replaces every occurrence of search left to right, resuming
// after each replaced occurrence, and reports how many were replaced.
// When caseSensitive is false occurrences are located on case-folded copies
// and the text between them keeps its original case.
func replaceAll(content, search, replacement string, caseSensitive bool) (string, int) {
	if search == "" {
		return content, 0
	}

	haystack, needle := content, search
	if !caseSensitive {
		haystack, needle = foldCase(content), foldCase(search)
	}

	var b strings.Builder
	count, last := 0, 0
	for {
		pos := strings.Index(haystack[last:], needle)
		if pos < 0 {
			break
		}
		abs := last + pos
		b.WriteString(content[last:abs])
		b.WriteString(replacement)
		last = abs + len(needle)
		count++
	}
	if count == 0 {
		return content, 0
	}
	b.WriteString(content[last:])

	return b.String(), count
}

// groupSet accumulates search groups keyed by page, keeping first
// insertion order.
type groupSet struct {
	groups []domain.SearchFileGroup
	index  map[string]int
}

func newGroupSet() *groupSet {
	return &groupSet{
		groups: []domain.SearchFileGroup{},
		index:  make(map[string]int),
	}
}

func (g *groupSet) len() int {
	return len(g.groups)
}

// group returns the group of a page, creating it on first use.
func (g *groupSet) group(pageID, title string, icon *string) *domain.SearchFileGroup {
	if idx, ok := g.index[pageID]; ok {
		return &g.groups[idx]
	}
	g.index[pageID] = len(g.groups)
	g.groups = append(g.groups, domain.SearchFileGroup{
		PageID:    pageID,
		PageTitle: title,
		PageIcon:  icon,
	})
	return &g.groups[len(g.groups)-1]
}

func (g *groupSet) appendMatches(pageID, title string, icon *string, matches []domain.SearchMatch) {
	grp := g.group(pageID, title, icon)
	grp.Matches = append(grp.Matches, matches...)
}

func (g *groupSet) prependMatches(pageID, title string, icon *string, matches []domain.SearchMatch) {
	grp := g.group(pageID, title, icon)
	grp.Matches = append(matches, grp.Matches...)
}

func (g *groupSet) list() []domain.SearchFileGroup {
	return g.groups
}
