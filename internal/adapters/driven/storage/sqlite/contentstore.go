package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
)

// contentStore implements driven.ContentStore.
type contentStore struct {
	store *Store
}

var _ driven.ContentStore = (*contentStore)(nil)

const pageColumns = `id, title, icon, cover_image, parent_id, is_archived, created_at, updated_at`

const blockColumns = `id, page_id, block_type, content, parent_id, order_position, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ==================== Pages ====================

// SavePage stores or updates a page. Updating in place keeps the rows that
// reference the page.
func (s *contentStore) SavePage(ctx context.Context, page *domain.Page) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			icon = excluded.icon,
			cover_image = excluded.cover_image,
			parent_id = excluded.parent_id,
			is_archived = excluded.is_archived,
			updated_at = excluded.updated_at
	`, page.ID, page.Title, nullString(page.Icon), nullString(page.Cover), nullString(page.ParentID),
		page.Archived, formatTime(page.CreatedAt), formatTime(page.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// GetPage retrieves a page by ID.
func (s *contentStore) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)

	page, err := scanPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return page, nil
}

// ListPages returns non-archived pages, most recently created first.
func (s *contentStore) ListPages(ctx context.Context) ([]domain.Page, error) {
	return s.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE is_archived = 0
		ORDER BY created_at DESC, id ASC
	`)
}

// ListRootPages returns non-archived top-level pages, oldest first.
func (s *contentStore) ListRootPages(ctx context.Context) ([]domain.Page, error) {
	return s.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE parent_id IS NULL AND is_archived = 0
		ORDER BY created_at ASC, id ASC
	`)
}

// ListChildPages returns non-archived children of a page, oldest first.
func (s *contentStore) ListChildPages(ctx context.Context, parentID string) ([]domain.Page, error) {
	return s.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE parent_id = ? AND is_archived = 0
		ORDER BY created_at ASC, id ASC
	`, parentID)
}

// DeletePage removes a page. Descendant pages and blocks go with it through
// ON DELETE CASCADE.
func (s *contentStore) DeletePage(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	res, err := s.store.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return requireAffected(res)
}

func (s *contentStore) queryPages(ctx context.Context, query string, args ...any) ([]domain.Page, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	pages := make([]domain.Page, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

func scanPage(row rowScanner) (*domain.Page, error) {
	var page domain.Page
	var icon, cover, parentID sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&page.ID, &page.Title, &icon, &cover, &parentID,
		&page.Archived, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}

	page.Icon = stringPtr(icon)
	page.Cover = stringPtr(cover)
	page.ParentID = stringPtr(parentID)

	var err error
	if page.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if page.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &page, nil
}

// ==================== Blocks ====================

// SaveBlock stores or updates a block.
func (s *contentStore) SaveBlock(ctx context.Context, block *domain.Block) error {
	blockType, err := encodeBlockType(block.Type)
	if err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO blocks (`+blockColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page_id = excluded.page_id,
			block_type = excluded.block_type,
			content = excluded.content,
			parent_id = excluded.parent_id,
			order_position = excluded.order_position,
			updated_at = excluded.updated_at
	`, block.ID, block.PageID, blockType, block.Content, nullString(block.ParentID),
		block.Order, formatTime(block.CreatedAt), formatTime(block.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving block: %w", err)
	}
	return nil
}

// AppendBlock inserts block after its last sibling. Reading the highest
// sibling order and inserting happen in one transaction under the writer lock.
func (s *contentStore) AppendBlock(ctx context.Context, block *domain.Block) error {
	blockType, err := encodeBlockType(block.Type)
	if err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM pages WHERE id = ?", block.PageID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading page: %w", err)
	}

	if block.ParentID != nil {
		var parentPage string
		err = tx.QueryRowContext(ctx, "SELECT page_id FROM blocks WHERE id = ?", *block.ParentID).Scan(&parentPage)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("reading parent block: %w", err)
		}
		if parentPage != block.PageID {
			return fmt.Errorf("%w: parent block %s is not on page %s",
				domain.ErrInvalidInput, *block.ParentID, block.PageID)
		}
	}

	var order int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(order_position) + 1, 0) FROM blocks
		WHERE page_id = ? AND parent_id IS ?
	`, block.PageID, nullString(block.ParentID)).Scan(&order)
	if err != nil {
		return fmt.Errorf("reading sibling order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO blocks (`+blockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		block.ID, block.PageID, blockType, block.Content, nullString(block.ParentID),
		order, formatTime(block.CreatedAt), formatTime(block.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing block: %w", err)
	}
	block.Order = order
	return nil
}

// MoveBlock renumbers the siblings of a block in one transaction. Only
// order_position and updated_at are written, so concurrent content edits
// are never overwritten.
func (s *contentStore) MoveBlock(ctx context.Context, id string, position int) (*domain.Block, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: starting transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var pageID string
	var parentID sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT page_id, parent_id FROM blocks WHERE id = ?", id).Scan(&pageID, &parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading block: %w", err)
	}

	type sibling struct {
		id    string
		order int
	}
	rows, err := tx.QueryContext(ctx, `
		SELECT id, order_position FROM blocks
		WHERE page_id = ? AND parent_id IS ? AND id != ?
		ORDER BY order_position ASC, id ASC
	`, pageID, parentID, id)
	if err != nil {
		return nil, fmt.Errorf("querying siblings: %w", err)
	}
	var siblings []sibling
	for rows.Next() {
		var sib sibling
		if err := rows.Scan(&sib.id, &sib.order); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning sibling: %w", err)
		}
		siblings = append(siblings, sib)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating siblings: %w", err)
	}

	position = min(max(position, 0), len(siblings))
	siblings = slices.Insert(siblings, position, sibling{id: id, order: -1})

	now := formatTime(time.Now())
	for i, sib := range siblings {
		if sib.order == i {
			continue
		}
		_, err := tx.ExecContext(ctx, "UPDATE blocks SET order_position = ?, updated_at = ? WHERE id = ?",
			i, now, sib.id)
		if err != nil {
			return nil, fmt.Errorf("moving block %s: %w", sib.id, err)
		}
	}

	moved, err := scanBlock(tx.QueryRowContext(ctx, `SELECT `+blockColumns+` FROM blocks WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing move: %w", err)
	}
	return moved, nil
}

// GetBlock retrieves a block by ID.
func (s *contentStore) GetBlock(ctx context.Context, id string) (*domain.Block, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+blockColumns+` FROM blocks WHERE id = ?`, id)

	block, err := scanBlock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return block, nil
}

// ListBlocks returns the blocks of a page ordered by position.
func (s *contentStore) ListBlocks(ctx context.Context, pageID string) ([]domain.Block, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+blockColumns+` FROM blocks
		WHERE page_id = ?
		ORDER BY order_position ASC, id ASC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer rows.Close()

	blocks := make([]domain.Block, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}
	return blocks, nil
}

// DeleteBlock removes a block. Nested blocks go with it through
// ON DELETE CASCADE.
func (s *contentStore) DeleteBlock(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	res, err := s.store.db.ExecContext(ctx, "DELETE FROM blocks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}
	return requireAffected(res)
}

// ListSearchableBlocks joins every block of a non-archived page with its page.
func (s *contentStore) ListSearchableBlocks(ctx context.Context) ([]domain.SearchableBlock, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT b.id, b.page_id, b.block_type, b.content, b.order_position, p.title, p.icon
		FROM blocks b
		JOIN pages p ON b.page_id = p.id
		WHERE p.is_archived = 0
		ORDER BY p.updated_at DESC, p.id ASC, b.order_position ASC, b.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying searchable blocks: %w", err)
	}
	defer rows.Close()

	result := make([]domain.SearchableBlock, 0)
	for rows.Next() {
		var sb domain.SearchableBlock
		var blockType string
		var icon sql.NullString
		if err := rows.Scan(&sb.BlockID, &sb.PageID, &blockType, &sb.Content,
			&sb.Order, &sb.PageTitle, &icon); err != nil {
			return nil, fmt.Errorf("scanning searchable block: %w", err)
		}
		if sb.Type, err = decodeBlockType(blockType); err != nil {
			return nil, fmt.Errorf("block %s: %w", sb.BlockID, err)
		}
		sb.PageIcon = stringPtr(icon)
		result = append(result, sb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating searchable blocks: %w", err)
	}
	return result, nil
}

// ModifyBlockContent reads, transforms and writes block content in one
// transaction while holding the writer lock.
func (s *contentStore) ModifyBlockContent(
	ctx context.Context, id string, fn driven.ContentModifier,
) (string, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%w: starting transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var current string
	err = tx.QueryRowContext(ctx, "SELECT content FROM blocks WHERE id = ?", id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("reading block content: %w", err)
	}

	next, err := fn(current)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx, "UPDATE blocks SET content = ?, updated_at = ? WHERE id = ?",
		next, formatTime(time.Now()), id)
	if err != nil {
		return "", fmt.Errorf("writing block content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing block content: %w", err)
	}
	return next, nil
}

func scanBlock(row rowScanner) (*domain.Block, error) {
	var block domain.Block
	var blockType string
	var parentID sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&block.ID, &block.PageID, &blockType, &block.Content, &parentID,
		&block.Order, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning block: %w", err)
	}

	var err error
	if block.Type, err = decodeBlockType(blockType); err != nil {
		return nil, fmt.Errorf("block %s: %w", block.ID, err)
	}
	block.ParentID = stringPtr(parentID)

	if block.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if block.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &block, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
