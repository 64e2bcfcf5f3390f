package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
type ContentStore struct {
	mu     sync.RWMutex
	pages  map[string]domain.Page
	blocks map[string]domain.Block
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		pages:  make(map[string]domain.Page),
		blocks: make(map[string]domain.Block),
	}
}

// SavePage stores or updates a page.
func (s *ContentStore) SavePage(_ context.Context, page *domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = *page
	return nil
}

// GetPage retrieves a page by ID.
func (s *ContentStore) GetPage(_ context.Context, id string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

// ListPages returns non-archived pages, most recently created first.
func (s *ContentStore) ListPages(_ context.Context) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := s.filterPages(func(p *domain.Page) bool { return true })
	slices.SortStableFunc(pages, func(a, b domain.Page) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return pages, nil
}

// ListRootPages returns non-archived top-level pages, oldest first.
func (s *ContentStore) ListRootPages(_ context.Context) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := s.filterPages(func(p *domain.Page) bool { return p.ParentID == nil })
	sortByCreation(pages)
	return pages, nil
}

// ListChildPages returns non-archived children of a page, oldest first.
func (s *ContentStore) ListChildPages(_ context.Context, parentID string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := s.filterPages(func(p *domain.Page) bool {
		return p.ParentID != nil && *p.ParentID == parentID
	})
	sortByCreation(pages)
	return pages, nil
}

// DeletePage removes a page, its descendant pages and their blocks.
func (s *ContentStore) DeletePage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[id]; !ok {
		return domain.ErrNotFound
	}

	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for pid, p := range s.pages {
			if !doomed[pid] && p.ParentID != nil && doomed[*p.ParentID] {
				doomed[pid] = true
				changed = true
			}
		}
	}

	for pid := range doomed {
		delete(s.pages, pid)
	}
	for bid, b := range s.blocks {
		if doomed[b.PageID] {
			delete(s.blocks, bid)
		}
	}
	return nil
}

// SaveBlock stores or updates a block.
func (s *ContentStore) SaveBlock(_ context.Context, block *domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[block.ID] = *block
	return nil
}

// AppendBlock inserts block after its last sibling under the write lock.
func (s *ContentStore) AppendBlock(_ context.Context, block *domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[block.PageID]; !ok {
		return domain.ErrNotFound
	}
	if block.ParentID != nil {
		parent, ok := s.blocks[*block.ParentID]
		if !ok || parent.PageID != block.PageID {
			return fmt.Errorf("%w: parent block %s is not on page %s",
				domain.ErrInvalidInput, *block.ParentID, block.PageID)
		}
	}

	order := 0
	for _, b := range s.siblings(block.PageID, block.ParentID, "") {
		order = max(order, b.Order+1)
	}
	block.Order = order
	s.blocks[block.ID] = *block
	return nil
}

// MoveBlock renumbers the siblings of a block under the write lock. Only
// Order and UpdatedAt are touched.
func (s *ContentStore) MoveBlock(_ context.Context, id string, position int) (*domain.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, ok := s.blocks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	siblings := s.siblings(block.PageID, block.ParentID, id)
	position = min(max(position, 0), len(siblings))
	block.Order = -1
	siblings = slices.Insert(siblings, position, block)

	now := time.Now().UTC()
	for i, sib := range siblings {
		if sib.Order == i {
			continue
		}
		stored := s.blocks[sib.ID]
		stored.Order = i
		stored.UpdatedAt = now
		s.blocks[sib.ID] = stored
	}

	moved := s.blocks[id]
	return &moved, nil
}

// GetBlock retrieves a block by ID.
func (s *ContentStore) GetBlock(_ context.Context, id string) (*domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	block, ok := s.blocks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &block, nil
}

// ListBlocks returns the blocks of a page ordered by Order.
func (s *ContentStore) ListBlocks(_ context.Context, pageID string) ([]domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]domain.Block, 0)
	for _, b := range s.blocks {
		if b.PageID == pageID {
			blocks = append(blocks, b)
		}
	}
	slices.SortStableFunc(blocks, compareBlocks)
	return blocks, nil
}

// DeleteBlock removes a block and the blocks nested under it.
func (s *ContentStore) DeleteBlock(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blocks[id]; !ok {
		return domain.ErrNotFound
	}

	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for bid, b := range s.blocks {
			if !doomed[bid] && b.ParentID != nil && doomed[*b.ParentID] {
				doomed[bid] = true
				changed = true
			}
		}
	}
	for bid := range doomed {
		delete(s.blocks, bid)
	}
	return nil
}

// ListSearchableBlocks returns the blocks of non-archived pages joined with
// their page, newest page first.
func (s *ContentStore) ListSearchableBlocks(_ context.Context) ([]domain.SearchableBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type row struct {
		updated time.Time
		block   domain.Block
		page    domain.Page
	}

	rows := make([]row, 0, len(s.blocks))
	for _, b := range s.blocks {
		p, ok := s.pages[b.PageID]
		if !ok || p.Archived {
			continue
		}
		rows = append(rows, row{updated: p.UpdatedAt, block: b, page: p})
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		return cmp.Or(
			b.updated.Compare(a.updated),
			cmp.Compare(a.page.ID, b.page.ID),
			compareBlocks(a.block, b.block),
		)
	})

	result := make([]domain.SearchableBlock, len(rows))
	for i, r := range rows {
		result[i] = domain.SearchableBlock{
			BlockID:   r.block.ID,
			PageID:    r.page.ID,
			Type:      r.block.Type,
			Content:   r.block.Content,
			Order:     r.block.Order,
			PageTitle: r.page.Title,
			PageIcon:  r.page.Icon,
		}
	}
	return result, nil
}

// ModifyBlockContent applies fn to the content of a block under the write lock.
func (s *ContentStore) ModifyBlockContent(
	_ context.Context, id string, fn driven.ContentModifier,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, ok := s.blocks[id]
	if !ok {
		return "", domain.ErrNotFound
	}

	content, err := fn(block.Content)
	if err != nil {
		return "", err
	}

	block.Content = content
	block.UpdatedAt = time.Now().UTC()
	s.blocks[id] = block
	return content, nil
}

// siblings returns the ordered blocks under parentID on a page, leaving out
// skipID. Callers hold the lock.
func (s *ContentStore) siblings(pageID string, parentID *string, skipID string) []domain.Block {
	out := make([]domain.Block, 0)
	for _, b := range s.blocks {
		if b.PageID == pageID && b.ID != skipID && b.SameParent(parentID) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, compareBlocks)
	return out
}

// filterPages returns non-archived pages accepted by keep. Callers hold the lock.
func (s *ContentStore) filterPages(keep func(*domain.Page) bool) []domain.Page {
	pages := make([]domain.Page, 0)
	for _, p := range s.pages {
		if !p.Archived && keep(&p) {
			pages = append(pages, p)
		}
	}
	return pages
}

func sortByCreation(pages []domain.Page) {
	slices.SortStableFunc(pages, func(a, b domain.Page) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}

func compareBlocks(a, b domain.Block) int {
	return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
}
