package driving

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// BlockService manages the blocks of a page.
type BlockService interface {
	// Create appends a block after its last sibling.
	Create(ctx context.Context, pageID string, typ domain.BlockType, content string, parentID *string) (*domain.Block, error)

	// ListByPage returns the blocks of a page in order.
	ListByPage(ctx context.Context, pageID string) ([]domain.Block, error)

	// Get retrieves a block by ID.
	Get(ctx context.Context, id string) (*domain.Block, error)

	// UpdateContent replaces the content of a block.
	UpdateContent(ctx context.Context, id, content string) (*domain.Block, error)

	// Reorder moves a block to a new sibling position.
	Reorder(ctx context.Context, id string, order int) (*domain.Block, error)

	// Delete removes a block and its nested blocks.
	Delete(ctx context.Context, id string) error
}
