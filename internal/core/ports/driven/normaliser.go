package driven

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// Normaliser turns an external document into a page draft.
// Each normaliser handles specific MIME types (e.g. Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise parses a raw document into a title and block drafts.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.PageDraft, error)
}
