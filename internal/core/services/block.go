package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
	"github.com/custodia-labs/bismuth/internal/logger"
)

// Ensure BlockService implements the interface.
var _ driving.BlockService = (*BlockService)(nil)

// BlockService manages the blocks of a page.
type BlockService struct {
	store driven.ContentStore
}

// NewBlockService creates a new block service.
func NewBlockService(store driven.ContentStore) *BlockService {
	return &BlockService{store: store}
}

// Create appends a block after its last sibling. The first block under a
// parent gets order 0. The store assigns the order atomically, so
// concurrent creates never share a position.
func (s *BlockService) Create(
	ctx context.Context, pageID string, typ domain.BlockType, content string, parentID *string,
) (*domain.Block, error) {
	if err := validateID("page", pageID); err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := validateID("parent block", *parentID); err != nil {
			return nil, err
		}
	}
	if err := validateBlockType(typ); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	now := time.Now().UTC()
	block := &domain.Block{
		ID:        newID(),
		PageID:    pageID,
		Type:      typ,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.AppendBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("create block on page %s: %w", pageID, err)
	}
	logger.Debug("Created %s block %s at order %d", typ.Kind, block.ID, block.Order)
	return block, nil
}

// ListByPage returns the blocks of a page in order.
func (s *BlockService) ListByPage(ctx context.Context, pageID string) ([]domain.Block, error) {
	if err := validateID("page", pageID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListBlocks(ctx, pageID)
}

// Get retrieves a block by ID.
func (s *BlockService) Get(ctx context.Context, id string) (*domain.Block, error) {
	if err := validateID("block", id); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.GetBlock(ctx, id)
}

// UpdateContent replaces the content of a block.
func (s *BlockService) UpdateContent(ctx context.Context, id, content string) (*domain.Block, error) {
	if err := validateID("block", id); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	_, err := s.store.ModifyBlockContent(ctx, id, func(string) (string, error) {
		return content, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update block %s: %w", id, err)
	}
	return s.store.GetBlock(ctx, id)
}

// Reorder moves a block to position order among its siblings. The
// siblings are renumbered 0..n-1 so positions stay unique; an order past
// the end moves the block last.
func (s *BlockService) Reorder(ctx context.Context, id string, order int) (*domain.Block, error) {
	if err := validateID("block", id); err != nil {
		return nil, err
	}
	if order < 0 {
		return nil, fmt.Errorf("%w: negative order %d", domain.ErrInvalidInput, order)
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	block, err := s.store.MoveBlock(ctx, id, order)
	if err != nil {
		return nil, fmt.Errorf("reorder block %s: %w", id, err)
	}
	logger.Debug("Moved block %s to order %d", id, block.Order)
	return block, nil
}

// Delete removes a block and its nested blocks.
func (s *BlockService) Delete(ctx context.Context, id string) error {
	if err := validateID("block", id); err != nil {
		return err
	}
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.DeleteBlock(ctx, id); err != nil {
		return fmt.Errorf("delete block %s: %w", id, err)
	}
	return nil
}

func validateBlockType(typ domain.BlockType) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	if typ.ReferencesPage() {
		return validateID("linked page", typ.PageID)
	}
	return nil
}
