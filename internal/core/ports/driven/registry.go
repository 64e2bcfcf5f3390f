package driven

import (
	"context"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a document.
// It keeps normalisers ordered by priority and dispatches on MIME type.
type NormaliserRegistry interface {
	// Normalise parses a raw document with the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.PageDraft, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
