package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

func contents(draft *domain.PageDraft) []string {
	out := make([]string, len(draft.Blocks))
	for i, b := range draft.Blocks {
		out[i] = b.Content
	}
	return out
}

func TestNormaliser_Metadata(t *testing.T) {
	n := New()

	assert.ElementsMatch(t, []string{"text/plain", "text/csv", "text/x-log"}, n.SupportedMIMETypes())
	assert.NotContains(t, n.SupportedMIMETypes(), "text/markdown")
	assert.Equal(t, 5, n.Priority())
}

func TestNormalise_Paragraphs(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/notes/groceries.txt",
		MIMEType: "text/plain",
		Content:  []byte("milk\r\neggs  \r\n\r\n\r\nbread\n"),
	}

	draft, err := New().Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "groceries", draft.Title)
	assert.Equal(t, []string{"milk\neggs", "bread"}, contents(draft))
	for _, b := range draft.Blocks {
		assert.Equal(t, domain.BlockKindText, b.Type.Kind)
		assert.Empty(t, b.Children)
	}
}

func TestNormalise_LineOriented(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		content  string
		want     []string
	}{
		{
			name:     "csv rows",
			mimeType: "text/csv",
			content:  "name,qty\nmilk,1\n\neggs,12\n",
			want:     []string{"name,qty", "milk,1", "eggs,12"},
		},
		{
			name:     "log lines",
			mimeType: "text/x-log",
			content:  "INFO start  \r\nWARN slow\r\n",
			want:     []string{"INFO start", "WARN slow"},
		},
		{
			name:     "parameters ignored",
			mimeType: "text/csv; charset=utf-8",
			content:  "a\nb",
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := New().Normalise(context.Background(), &domain.RawDocument{
				URI:      "/data/file",
				MIMEType: tt.mimeType,
				Content:  []byte(tt.content),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, contents(draft))
		})
	}
}

func TestNormalise_NilDocument(t *testing.T) {
	draft, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, draft)
}

func TestNormalise_BlankContent(t *testing.T) {
	draft, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/notes/my_empty-note.txt",
		Content: []byte(" \n\n\t\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, "my empty note", draft.Title)
	assert.Empty(t, draft.Blocks)
}
