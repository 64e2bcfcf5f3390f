package driven

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// ContentModifier computes new block content from the current content.
type ContentModifier func(current string) (string, error)

// ContentStore persists pages and blocks.
// Backed by SQLite, with an in-memory implementation for tests.
//
// Implementations serialize statements: a concurrent write to a block may or
// may not be visible to an in-flight read, but a read never observes a torn row.
type ContentStore interface {
	// SavePage stores or updates a page.
	SavePage(ctx context.Context, page *domain.Page) error

	// GetPage retrieves a page by ID, archived or not.
	GetPage(ctx context.Context, id string) (*domain.Page, error)

	// ListPages returns non-archived pages, most recently created first.
	ListPages(ctx context.Context) ([]domain.Page, error)

	// ListRootPages returns non-archived pages without a parent, oldest first.
	ListRootPages(ctx context.Context) ([]domain.Page, error)

	// ListChildPages returns non-archived children of a page, oldest first.
	ListChildPages(ctx context.Context, parentID string) ([]domain.Page, error)

	// DeletePage removes a page, its descendant pages and all their blocks.
	DeletePage(ctx context.Context, id string) error

	// SaveBlock stores or updates a block as given, Order included.
	SaveBlock(ctx context.Context, block *domain.Block) error

	// AppendBlock inserts a new block after its last sibling and sets
	// block.Order to max(sibling order)+1, or 0 for the first sibling. The
	// order is computed and the row written under one lock. Returns
	// domain.ErrNotFound if the page is missing and domain.ErrInvalidInput
	// if the parent block is not on the same page.
	AppendBlock(ctx context.Context, block *domain.Block) error

	// MoveBlock moves a block to position among its siblings and renumbers
	// them 0..n-1 in one step. Only Order and UpdatedAt change; a position
	// past the end moves the block last. Returns the moved block.
	MoveBlock(ctx context.Context, id string, position int) (*domain.Block, error)

	// GetBlock retrieves a block by ID.
	GetBlock(ctx context.Context, id string) (*domain.Block, error)

	// ListBlocks returns the blocks of a page ordered by Order.
	ListBlocks(ctx context.Context, pageID string) ([]domain.Block, error)

	// DeleteBlock removes a block and the blocks nested under it.
	DeleteBlock(ctx context.Context, id string) error

	// ListSearchableBlocks returns every block of a non-archived page joined
	// with its page, ordered by page UpdatedAt descending then block Order.
	ListSearchableBlocks(ctx context.Context) ([]domain.SearchableBlock, error)

	// ModifyBlockContent reads the content of a block, applies fn and writes
	// the result back, updating the block's UpdatedAt. The read and the write
	// happen under the same lock so concurrent writers cannot lose updates.
	// Returns the new content, or domain.ErrNotFound if the block is missing.
	ModifyBlockContent(ctx context.Context, id string, fn ContentModifier) (string, error)
}
