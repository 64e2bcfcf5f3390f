package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// stubNormaliser records that it was selected.
type stubNormaliser struct {
	name     string
	mimes    []string
	priority int
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.mimes }
func (s *stubNormaliser) Priority() int                { return s.priority }

func (s *stubNormaliser) Normalise(_ context.Context, _ *domain.RawDocument) (*domain.PageDraft, error) {
	return &domain.PageDraft{Title: s.name}, nil
}

func TestRegistry_PrefersHigherPriority(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{name: "fallback", mimes: []string{"text/markdown"}, priority: 5},
		&stubNormaliser{name: "specific", mimes: []string{"text/markdown"}, priority: 90},
	)

	draft, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/markdown"})

	require.NoError(t, err)
	assert.Equal(t, "specific", draft.Title)
}

func TestRegistry_MIMETypeFromURI(t *testing.T) {
	r := Default()
	ctx := context.Background()

	draft, err := r.Normalise(ctx, &domain.RawDocument{URI: "/notes/todo.md", Content: []byte("- [ ] call mum")})
	require.NoError(t, err)
	require.Len(t, draft.Blocks, 1)
	assert.Equal(t, domain.BlockKindTodo, draft.Blocks[0].Type.Kind)

	draft, err = r.Normalise(ctx, &domain.RawDocument{URI: "/notes/todo.txt", Content: []byte("- [ ] call mum")})
	require.NoError(t, err)
	require.Len(t, draft.Blocks, 1)
	assert.Equal(t, domain.BlockKindText, draft.Blocks[0].Type.Kind)
}

func TestRegistry_MIMEParametersIgnored(t *testing.T) {
	draft, err := Default().Normalise(context.Background(), &domain.RawDocument{
		URI:      "notes",
		MIMEType: "text/markdown; charset=utf-8",
		Content:  []byte("## Heading"),
	})

	require.NoError(t, err)
	require.Len(t, draft.Blocks, 1)
	assert.Equal(t, domain.BlockKindHeading2, draft.Blocks[0].Type.Kind)
}

func TestRegistry_Unsupported(t *testing.T) {
	_, err := Default().Normalise(context.Background(), &domain.RawDocument{URI: "/tmp/photo.png"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := Default().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_SupportedMIMETypes(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{mimes: []string{"text/plain", "text/markdown"}},
		&stubNormaliser{mimes: []string{"text/markdown"}},
	)

	assert.Equal(t, []string{"text/markdown", "text/plain"}, r.SupportedMIMETypes())
}

func TestMIMETypeForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"notes.md", "text/markdown"},
		{"NOTES.MARKDOWN", "text/markdown"},
		{"notes.txt", "text/plain"},
		{"README", "text/plain"},
		{"export.csv", "text/csv"},
		{"server.log", "text/x-log"},
		{"archive.unknownext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, MIMETypeForPath(tt.path))
		})
	}
}

func TestRegistry_PassesResolvedMIMEType(t *testing.T) {
	draft, err := Default().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/var/log/app.log",
		Content: []byte("started\nstopped\n"),
	})

	require.NoError(t, err)
	require.Len(t, draft.Blocks, 2)
	assert.Equal(t, "stopped", draft.Blocks[1].Content)
}
