package driving

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// PageService manages pages and the page tree.
type PageService interface {
	// Create adds a root page.
	Create(ctx context.Context, title string) (*domain.Page, error)

	// CreateNested adds a page under parentID.
	CreateNested(ctx context.Context, title, parentID string) (*domain.Page, error)

	// Get retrieves a page by ID.
	Get(ctx context.Context, id string) (*domain.Page, error)

	// List returns all non-archived pages, newest first.
	List(ctx context.Context) ([]domain.Page, error)

	// Roots returns non-archived top-level pages.
	Roots(ctx context.Context) ([]domain.Page, error)

	// Children returns non-archived pages nested under parentID.
	Children(ctx context.Context, parentID string) ([]domain.Page, error)

	// UpdateTitle renames a page.
	UpdateTitle(ctx context.Context, id, title string) (*domain.Page, error)

	// UpdateIcon sets the icon reference of a page.
	UpdateIcon(ctx context.Context, id, icon string) (*domain.Page, error)

	// UpdateCover sets the cover reference of a page.
	UpdateCover(ctx context.Context, id, cover string) (*domain.Page, error)

	// SetArchived archives or restores a page.
	SetArchived(ctx context.Context, id string, archived bool) (*domain.Page, error)

	// Delete removes a page together with its sub-pages and blocks.
	Delete(ctx context.Context, id string) error

	// ValidateLink reports whether id names an existing page.
	ValidateLink(ctx context.Context, id string) (bool, error)
}
