package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bismuth/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/normalisers"
)

// flakyBlockStore fails SaveBlock once failAfter blocks were written.
type flakyBlockStore struct {
	*memory.ContentStore
	failAfter int
	saved     int
}

func (s *flakyBlockStore) SaveBlock(ctx context.Context, block *domain.Block) error {
	if s.saved >= s.failAfter {
		return domain.ErrStoreUnavailable
	}
	s.saved++
	return s.ContentStore.SaveBlock(ctx, block)
}

func markdownDoc(content string) *domain.RawDocument {
	return &domain.RawDocument{URI: "/notes/import.md", Content: []byte(content)}
}

func TestImportService_Import(t *testing.T) {
	f := newFixture()
	svc := NewImportService(f.store, normalisers.Default())
	ctx := context.Background()

	page, err := svc.Import(ctx, markdownDoc("# Trip\n\n- pack\n  - [x] passport\n- book hotel\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Trip", page.Title)
	assert.True(t, page.IsRoot())

	blocks, err := f.blocks.ListByPage(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	byContent := map[string]domain.Block{}
	for _, b := range blocks {
		byContent[b.Content] = b
	}
	pack, passport, hotel := byContent["pack"], byContent["passport"], byContent["book hotel"]
	assert.Nil(t, pack.ParentID)
	assert.Equal(t, 0, pack.Order)
	require.NotNil(t, passport.ParentID)
	assert.Equal(t, pack.ID, *passport.ParentID)
	assert.Equal(t, domain.BlockKindTodo, passport.Type.Kind)
	assert.True(t, passport.Type.Checked)
	assert.Equal(t, 1, hotel.Order)

	resp, err := f.search.Search(ctx, "passport", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalMatches)
}

func TestImportService_ImportNested(t *testing.T) {
	f := newFixture()
	svc := NewImportService(f.store, normalisers.Default())
	ctx := context.Background()
	parent := f.page(t, "Inbox", t0)

	page, err := svc.Import(ctx, &domain.RawDocument{URI: "call-notes.txt", Content: []byte("hello")}, &parent.ID)
	require.NoError(t, err)

	assert.Equal(t, "call notes", page.Title)
	require.NotNil(t, page.ParentID)
	assert.Equal(t, parent.ID, *page.ParentID)

	children, err := f.pages.Children(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, page.ID, children[0].ID)
}

func TestImportService_Errors(t *testing.T) {
	f := newFixture()
	svc := NewImportService(f.store, normalisers.Default())
	ctx := context.Background()

	t.Run("nil document", func(t *testing.T) {
		_, err := svc.Import(ctx, nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed parent id", func(t *testing.T) {
		bad := "nope"
		_, err := svc.Import(ctx, markdownDoc("x"), &bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing parent", func(t *testing.T) {
		missing := uuid.NewString()
		_, err := svc.Import(ctx, markdownDoc("x"), &missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := svc.Import(ctx, &domain.RawDocument{URI: "image.png"}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("link to malformed page id writes nothing", func(t *testing.T) {
		_, err := svc.Import(ctx, markdownDoc("[x](bismuth://pages/not-a-uuid)"), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		pages, err := f.pages.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := NewImportService(nil, nil).Import(ctx, markdownDoc("x"), nil)
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
	})
}

func TestImportService_RollsBackPartialImport(t *testing.T) {
	store := &flakyBlockStore{ContentStore: memory.NewContentStore(), failAfter: 1}
	svc := NewImportService(store, normalisers.Default())
	ctx := context.Background()

	_, err := svc.Import(ctx, markdownDoc("first\n\nsecond\n"), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))

	pages, err := store.ListPages(ctx)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestImportService_ExportRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	export := NewExportService(f.store)
	imp := NewImportService(f.store, normalisers.Default())

	src := f.page(t, "Recipes", t0)
	target := f.page(t, "Pantry", t0)
	icon := "🍝"
	_, err := f.pages.UpdateIcon(ctx, src.ID, icon)
	require.NoError(t, err)

	mk := func(typ domain.BlockType, content string, parent *string) *domain.Block {
		b, err := f.blocks.Create(ctx, src.ID, typ, content, parent)
		require.NoError(t, err)
		return b
	}
	mk(domain.BlockType{Kind: domain.BlockKindHeading2}, "Pasta", nil)
	list := mk(domain.BlockType{Kind: domain.BlockKindBulletList}, "Ingredients", nil)
	mk(domain.BlockType{Kind: domain.BlockKindTodo, Checked: true}, "salt", &list.ID)
	mk(domain.BlockType{Kind: domain.BlockKindCode, Language: "text"}, "boil 10m\nserve", nil)
	mk(domain.BlockType{Kind: domain.BlockKindQuote}, "Eat well\nLive well", nil)
	mk(domain.BlockType{Kind: domain.BlockKindDivider}, "", nil)
	mk(domain.BlockType{Kind: domain.BlockKindPageLink, PageID: target.ID}, "See pantry", nil)

	md, err := export.Markdown(ctx, src.ID)
	require.NoError(t, err)

	copied, err := imp.Import(ctx, &domain.RawDocument{URI: "recipes.md", Content: []byte(md)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Recipes", copied.Title)
	require.NotNil(t, copied.Icon)
	assert.Equal(t, icon, *copied.Icon)

	original, err := f.blocks.ListByPage(ctx, src.ID)
	require.NoError(t, err)
	imported, err := f.blocks.ListByPage(ctx, copied.ID)
	require.NoError(t, err)
	require.Len(t, imported, len(original))

	type shape struct {
		Type    domain.BlockType
		Content string
		Nested  bool
		Order   int
	}
	shapes := func(blocks []domain.Block) []shape {
		out := make([]shape, len(blocks))
		for i, b := range blocks {
			out[i] = shape{Type: b.Type, Content: b.Content, Nested: b.ParentID != nil, Order: b.Order}
		}
		return out
	}
	assert.ElementsMatch(t, shapes(original), shapes(imported))
}
