package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
	"github.com/custodia-labs/bismuth/internal/logger"
)

// Ensure PageService implements the interface.
var _ driving.PageService = (*PageService)(nil)

// PageService manages pages and the page tree.
type PageService struct {
	store driven.ContentStore
}

// NewPageService creates a new page service.
func NewPageService(store driven.ContentStore) *PageService {
	return &PageService{store: store}
}

// Create adds a root page.
func (s *PageService) Create(ctx context.Context, title string) (*domain.Page, error) {
	return s.create(ctx, title, nil)
}

// CreateNested adds a page under parentID. The parent must exist.
func (s *PageService) CreateNested(ctx context.Context, title, parentID string) (*domain.Page, error) {
	if err := validateID("parent page", parentID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if _, err := s.store.GetPage(ctx, parentID); err != nil {
		return nil, fmt.Errorf("get parent page %s: %w", parentID, err)
	}
	return s.create(ctx, title, &parentID)
}

func (s *PageService) create(ctx context.Context, title string, parentID *string) (*domain.Page, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	now := time.Now().UTC()
	page := &domain.Page{
		ID:        newID(),
		Title:     title,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.SavePage(ctx, page); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	logger.Debug("Created page %s (%q)", page.ID, page.Title)
	return page, nil
}

// Get retrieves a page by ID.
func (s *PageService) Get(ctx context.Context, id string) (*domain.Page, error) {
	if err := validateID("page", id); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.GetPage(ctx, id)
}

// List returns all non-archived pages, newest first.
func (s *PageService) List(ctx context.Context) ([]domain.Page, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListPages(ctx)
}

// Roots returns non-archived top-level pages.
func (s *PageService) Roots(ctx context.Context) ([]domain.Page, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListRootPages(ctx)
}

// Children returns non-archived pages nested under parentID.
func (s *PageService) Children(ctx context.Context, parentID string) ([]domain.Page, error) {
	if err := validateID("parent page", parentID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListChildPages(ctx, parentID)
}

// UpdateTitle renames a page.
func (s *PageService) UpdateTitle(ctx context.Context, id, title string) (*domain.Page, error) {
	return s.update(ctx, id, func(p *domain.Page) {
		p.Title = title
	})
}

// UpdateIcon sets the icon reference of a page.
func (s *PageService) UpdateIcon(ctx context.Context, id, icon string) (*domain.Page, error) {
	return s.update(ctx, id, func(p *domain.Page) {
		p.Icon = optional(icon)
	})
}

// UpdateCover sets the cover reference of a page.
func (s *PageService) UpdateCover(ctx context.Context, id, cover string) (*domain.Page, error) {
	return s.update(ctx, id, func(p *domain.Page) {
		p.Cover = optional(cover)
	})
}

// SetArchived archives or restores a page.
func (s *PageService) SetArchived(ctx context.Context, id string, archived bool) (*domain.Page, error) {
	return s.update(ctx, id, func(p *domain.Page) {
		p.Archived = archived
	})
}

func (s *PageService) update(ctx context.Context, id string, apply func(*domain.Page)) (*domain.Page, error) {
	if err := validateID("page", id); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	page, err := s.store.GetPage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", id, err)
	}

	apply(page)
	page.UpdatedAt = time.Now().UTC()

	if err := s.store.SavePage(ctx, page); err != nil {
		return nil, fmt.Errorf("update page %s: %w", id, err)
	}
	return page, nil
}

// Delete removes a page together with its sub-pages and blocks.
func (s *PageService) Delete(ctx context.Context, id string) error {
	if err := validateID("page", id); err != nil {
		return err
	}
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.DeletePage(ctx, id); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	logger.Debug("Deleted page %s", id)
	return nil
}

// ValidateLink reports whether id names an existing page.
// Malformed identifiers are reported as invalid links, not errors.
func (s *PageService) ValidateLink(ctx context.Context, id string) (bool, error) {
	if validateID("page", id) != nil {
		return false, nil
	}
	if s.store == nil {
		return false, domain.ErrNotImplemented
	}

	_, err := s.store.GetPage(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("validate page link %s: %w", id, err)
	}
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
