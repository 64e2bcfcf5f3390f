package driving

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// ImportService creates pages from external documents.
type ImportService interface {
	// Import normalises doc and stores it as a new page, nested under
	// parentID when it is not nil.
	Import(ctx context.Context, doc *domain.RawDocument, parentID *string) (*domain.Page, error)
}
