package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response *domain.SearchResponse
	content  string
	err      error

	lastQuery string
	lastOpts  domain.SearchOptions
	lastCase  bool
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return domain.EmptySearchResponse(), nil
	}
	return m.response, nil
}

func (m *mockSearchService) ReplaceInBlock(_ context.Context, _, _, _ string, caseSensitive bool) (string, error) {
	m.lastCase = caseSensitive
	return m.content, m.err
}

// mockPageService is a mock implementation of driving.PageService.
type mockPageService struct {
	pages []domain.Page
	page  *domain.Page
	err   error
}

func (m *mockPageService) Create(_ context.Context, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) CreateNested(_ context.Context, _, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) Get(_ context.Context, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) List(_ context.Context) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockPageService) Roots(_ context.Context) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockPageService) Children(_ context.Context, _ string) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockPageService) UpdateTitle(_ context.Context, _, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) UpdateIcon(_ context.Context, _, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) UpdateCover(_ context.Context, _, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) SetArchived(_ context.Context, _ string, _ bool) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockPageService) ValidateLink(_ context.Context, _ string) (bool, error) {
	return m.err == nil, m.err
}

// mockBlockService is a mock implementation of driving.BlockService.
type mockBlockService struct {
	blocks []domain.Block
	block  *domain.Block
	err    error

	lastPageID string
}

func (m *mockBlockService) Create(
	_ context.Context,
	_ string,
	_ domain.BlockType,
	_ string,
	_ *string,
) (*domain.Block, error) {
	return m.block, m.err
}

func (m *mockBlockService) ListByPage(_ context.Context, pageID string) ([]domain.Block, error) {
	m.lastPageID = pageID
	return m.blocks, m.err
}

func (m *mockBlockService) Get(_ context.Context, _ string) (*domain.Block, error) {
	return m.block, m.err
}

func (m *mockBlockService) UpdateContent(_ context.Context, _, _ string) (*domain.Block, error) {
	return m.block, m.err
}

func (m *mockBlockService) Reorder(_ context.Context, _ string, _ int) (*domain.Block, error) {
	return m.block, m.err
}

func (m *mockBlockService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	markdown string
	err      error
}

func (m *mockExportService) Markdown(_ context.Context, _ string) (string, error) {
	return m.markdown, m.err
}

// newTestServer fills the required ports with empty mocks.
func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Search == nil {
		ports.Search = &mockSearchService{}
	}
	if ports.Page == nil {
		ports.Page = &mockPageService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}
