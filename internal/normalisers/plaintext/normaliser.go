package plaintext

import (
	"context"
	"mime"
	"strings"

	"github.com/samber/lo"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// lineOriented types are split one record per block instead of by paragraph.
var lineOriented = map[string]bool{
	"text/csv":   true,
	"text/x-log": true,
}

// Normaliser turns plain text into text blocks. It is the fallback for
// anything textual the markdown normaliser does not claim.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv", "text/x-log"}
}

// Priority is low so format-aware normalisers win.
func (n *Normaliser) Priority() int {
	return 5
}

// Normalise splits text/plain on blank lines and CSV or log files on every
// line. Each piece becomes a text block; the title comes from the file name.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.PageDraft, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")

	var pieces []string
	if lineOriented[mediaType(raw.MIMEType)] {
		pieces = lines(content)
	} else {
		pieces = paragraphs(content)
	}

	return &domain.PageDraft{
		Title: raw.BaseTitle(),
		Blocks: lo.Map(pieces, func(p string, _ int) domain.BlockDraft {
			return domain.BlockDraft{Type: domain.BlockType{Kind: domain.BlockKindText}, Content: p}
		}),
	}, nil
}

func lines(content string) []string {
	return lo.FilterMap(strings.Split(content, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimRight(line, " \t")
		return line, strings.TrimSpace(line) != ""
	})
}

func paragraphs(content string) []string {
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()
	return out
}

func mediaType(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
