package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bannerdeck/banner-server/internal/domain"
	"github.com/bannerdeck/banner-server/internal/store"
)

// bannerColumns is the ordered list of columns selected in banner queries.
// Must match the scan order in scanBanner.
const bannerColumns = `id, feature_id, content, is_active, created_at, updated_at`

// scanBanner scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Banner. TagIDs are left nil; the caller loads them separately.
func scanBanner(scanner interface{ Scan(dest ...any) error }) (*domain.Banner, error) {
	var b domain.Banner

	var (
		isActive  int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&b.ID,
		&b.FeatureID,
		&b.Content,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.IsActive = isActive != 0

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBanner persists a new banner together with its tag associations in a
// single transaction. Unknown tag IDs are created on the fly; duplicate IDs
// in the request collapse to one association. Returns the assigned banner ID.
func (s *Store) CreateBanner(ctx context.Context, featureID int64, content string, isActive bool, tagIDs []int64) (int64, error) {
	if content == "" {
		return 0, store.ErrInvalidInput.WithMessage("content is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO banners (feature_id, content, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		featureID,
		content,
		boolToInt(isActive),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return 0, fmt.Errorf("insert banner: %w", err)
	}

	bannerID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("banner id: %w", err)
	}

	if err := replaceBannerTags(ctx, tx, bannerID, tagIDs, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return bannerID, nil
}

// replaceBannerTags rewrites the association set for a banner: existing rows
// are removed and the supplied IDs become the complete new set. Tags are
// created in the registry as a side effect.
func replaceBannerTags(ctx context.Context, tx *sql.Tx, bannerID int64, tagIDs []int64, now time.Time) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM banner_tags WHERE banner_id = ?`, bannerID); err != nil {
		return fmt.Errorf("delete banner_tags: %w", err)
	}

	for _, tagID := range tagIDs {
		if err := ensureTag(ctx, tx, tagID, now); err != nil {
			return err
		}
		// OR IGNORE collapses duplicate tag IDs in a single request.
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO banner_tags (banner_id, tag_id)
			VALUES (?, ?)`,
			bannerID,
			tagID,
		)
		if err != nil {
			return fmt.Errorf("insert banner_tag: %w", err)
		}
	}

	return nil
}

// GetBanner retrieves a banner and its tag IDs.
// Returns store.ErrNotFound if the banner does not exist.
func (s *Store) GetBanner(ctx context.Context, bannerID int64) (*domain.Banner, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bannerColumns+` FROM banners WHERE id = ?`, bannerID)

	b, err := scanBanner(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.TagIDs, err = s.bannerTagIDs(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// bannerTagIDs returns the tag IDs associated with a banner, ascending.
func (s *Store) bannerTagIDs(ctx context.Context, bannerID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_id FROM banner_tags WHERE banner_id = ? ORDER BY tag_id ASC`,
		bannerID)
	if err != nil {
		return nil, fmt.Errorf("query banner_tags: %w", err)
	}
	defer rows.Close()

	tagIDs := []int64{}
	for rows.Next() {
		var tagID int64
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("scan banner_tag: %w", err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return tagIDs, nil
}

// PatchBanner applies a partial update. Only non-nil patch fields change; a
// present TagIDs field replaces the whole association set. Field updates and
// association replacement commit atomically, and updated_at is refreshed on
// every successful patch. Returns store.ErrNotFound for unknown banners.
func (s *Store) PatchBanner(ctx context.Context, bannerID int64, patch domain.BannerPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM banners WHERE id = ?`, bannerID).Scan(&exists)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(now)}
	if patch.FeatureID != nil {
		sets = append(sets, "feature_id = ?")
		args = append(args, *patch.FeatureID)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, boolToInt(*patch.IsActive))
	}
	args = append(args, bannerID)

	query := `UPDATE banners SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update banner: %w", err)
	}

	if patch.TagIDs != nil {
		if err := replaceBannerTags(ctx, tx, bannerID, *patch.TagIDs, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteBanner removes a banner and its associations. Tags themselves
// persist. Returns store.ErrNotFound when the banner does not exist, so a
// repeated delete reports not-found rather than success.
func (s *Store) DeleteBanner(ctx context.Context, bannerID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM banner_tags WHERE banner_id = ?`, bannerID); err != nil {
		return fmt.Errorf("delete banner_tags: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM banners WHERE id = ?`, bannerID)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// QueryBanners returns banners matching the filter, ordered by banner ID
// ascending. Absent predicates impose no constraint; a tag predicate matches
// via the association table. Limit/Offset slice the filtered sequence.
func (s *Store) QueryBanners(ctx context.Context, filter store.BannerFilter) ([]*domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE 1=1`
	args := []any{}

	if filter.FeatureID != nil {
		query += ` AND feature_id = ?`
		args = append(args, *filter.FeatureID)
	}
	if filter.TagID != nil {
		query += ` AND EXISTS (
			SELECT 1 FROM banner_tags bt
			WHERE bt.banner_id = banners.id AND bt.tag_id = ?)`
		args = append(args, *filter.TagID)
	}
	if filter.ActiveOnly {
		query += ` AND is_active = 1`
	}

	query += ` ORDER BY id ASC`

	// SQLite requires a LIMIT clause before OFFSET; -1 means unlimited.
	limit := -1
	if filter.Limit != nil {
		limit = *filter.Limit
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query banners: %w", err)
	}
	defer rows.Close()

	banners := []*domain.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range banners {
		b.TagIDs, err = s.bannerTagIDs(ctx, b.ID)
		if err != nil {
			return nil, err
		}
	}

	return banners, nil
}
