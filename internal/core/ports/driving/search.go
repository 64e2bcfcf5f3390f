package driving

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// SearchService provides find and replace across pages and blocks.
type SearchService interface {
	// Search scans every block and page title of non-archived pages and
	// returns the matches grouped by page.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// ReplaceInBlock substitutes every occurrence of search in a block's
	// content and returns the new content.
	ReplaceInBlock(ctx context.Context, blockID, search, replacement string, caseSensitive bool) (string, error)
}
