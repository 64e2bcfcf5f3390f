package normalisers

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/logger"
	"github.com/custodia-labs/bismuth/internal/normalisers/markdown"
	"github.com/custodia-labs/bismuth/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches documents to the highest priority normaliser that
// supports their MIME type.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Default returns a registry with the Markdown and plain text normalisers.
func Default() *Registry {
	return NewRegistry(markdown.New(), plaintext.New())
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
	slices.SortStableFunc(r.normalisers, func(a, b driven.Normaliser) int {
		return b.Priority() - a.Priority()
	})
}

// Normalise parses raw with the best matching normaliser. An empty MIME
// type is derived from the document URI.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.PageDraft, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mimeType := baseMIMEType(raw.MIMEType)
	if mimeType == "" {
		mimeType = MIMETypeForPath(raw.URI)
	}

	r.mu.RLock()
	n, ok := lo.Find(r.normalisers, func(n driven.Normaliser) bool {
		return slices.Contains(n.SupportedMIMETypes(), mimeType)
	})
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for %s", domain.ErrInvalidInput, mimeType)
	}

	logger.Debug("Normalising %s as %s (priority %d)", raw.URI, mimeType, n.Priority())
	resolved := *raw
	resolved.MIMEType = mimeType
	return n.Normalise(ctx, &resolved)
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []string
	for _, n := range r.normalisers {
		all = append(all, n.SupportedMIMETypes()...)
	}
	all = lo.Uniq(all)
	slices.Sort(all)
	return all
}

// markdownExtensions are not registered with the mime package on every platform.
var markdownExtensions = []string{".md", ".markdown", ".mdown", ".mkd"}

// MIMETypeForPath guesses a MIME type from a file extension. Files without
// an extension are treated as plain text.
func MIMETypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == "" || ext == ".txt" || ext == ".text":
		return "text/plain"
	case slices.Contains(markdownExtensions, ext):
		return "text/markdown"
	case ext == ".csv":
		return "text/csv"
	case ext == ".log":
		return "text/x-log"
	}
	if t := baseMIMEType(mime.TypeByExtension(ext)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// baseMIMEType drops parameters such as "; charset=utf-8".
func baseMIMEType(t string) string {
	if t == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(t); err == nil {
		return mediaType
	}
	return strings.ToLower(strings.TrimSpace(t))
}
