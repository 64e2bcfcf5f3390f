package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
	"github.com/custodia-labs/bismuth/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService turns external documents into pages.
type ImportService struct {
	store    driven.ContentStore
	registry driven.NormaliserRegistry
}

// NewImportService creates a new import service.
func NewImportService(store driven.ContentStore, registry driven.NormaliserRegistry) *ImportService {
	return &ImportService{store: store, registry: registry}
}

// Import normalises doc and writes the page and its blocks. Every block
// type is validated before anything is written; if a write fails the
// partially imported page is removed.
func (s *ImportService) Import(ctx context.Context, doc *domain.RawDocument, parentID *string) (*domain.Page, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", domain.ErrInvalidInput)
	}
	if parentID != nil {
		if err := validateID("parent page", *parentID); err != nil {
			return nil, err
		}
	}
	if s.store == nil || s.registry == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Import")
	logger.Debug("Document: %s (%s, %d bytes)", doc.URI, doc.MIMEType, len(doc.Content))

	if parentID != nil {
		if _, err := s.store.GetPage(ctx, *parentID); err != nil {
			return nil, fmt.Errorf("get parent page %s: %w", *parentID, err)
		}
	}

	draft, err := s.registry.Normalise(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", doc.URI, err)
	}
	if err := validateDrafts(draft.Blocks); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	page := &domain.Page{
		ID:        newID(),
		Title:     draft.Title,
		Icon:      draft.Icon,
		Cover:     draft.Cover,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SavePage(ctx, page); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := s.saveDrafts(ctx, page.ID, nil, draft.Blocks, now); err != nil {
		if delErr := s.store.DeletePage(ctx, page.ID); delErr != nil {
			logger.Warn("Removing partial import %s failed: %v", page.ID, delErr)
		}
		return nil, fmt.Errorf("import blocks: %w", err)
	}

	logger.Info("Imported %s as page %s with %d blocks", doc.URI, page.ID, draft.CountBlocks())
	return page, nil
}

func (s *ImportService) saveDrafts(
	ctx context.Context, pageID string, parentID *string, drafts []domain.BlockDraft, now time.Time,
) error {
	for i := range drafts {
		d := &drafts[i]
		block := &domain.Block{
			ID:        newID(),
			PageID:    pageID,
			Type:      d.Type,
			Content:   d.Content,
			ParentID:  parentID,
			Order:     i,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.SaveBlock(ctx, block); err != nil {
			return err
		}
		if err := s.saveDrafts(ctx, pageID, &block.ID, d.Children, now); err != nil {
			return err
		}
	}
	return nil
}

func validateDrafts(drafts []domain.BlockDraft) error {
	for i := range drafts {
		if err := validateBlockType(drafts[i].Type); err != nil {
			return err
		}
		if err := validateDrafts(drafts[i].Children); err != nil {
			return err
		}
	}
	return nil
}
