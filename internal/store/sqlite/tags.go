package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bannerdeck/banner-server/internal/domain"
	"github.com/bannerdeck/banner-server/internal/store"
)

// EnsureTag returns the tag with the given ID, creating it if it does not
// exist. Two concurrent ensures of the same ID both succeed: the insert is a
// no-op when the row is already present.
func (s *Store) EnsureTag(ctx context.Context, tagID int64) (*domain.Tag, error) {
	if err := ensureTag(ctx, s.db, tagID, time.Now()); err != nil {
		return nil, err
	}
	return s.GetTag(ctx, tagID)
}

// ensureTag inserts the tag row if absent. Safe to call inside a banner
// transaction.
func ensureTag(ctx context.Context, q dbtx, tagID int64, now time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO tags (id, created_at) VALUES (?, ?)
		ON CONFLICT (id) DO NOTHING`,
		tagID,
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("ensure tag %d: %w", tagID, err)
	}
	return nil
}

// GetTag retrieves a tag by its ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, tagID int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM tags WHERE id = ?`, tagID)

	var (
		t         domain.Tag
		createdAt string
	)
	err := row.Scan(&t.ID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTags returns all known tags ordered by ID.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at FROM tags ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var (
			t         domain.Tag
			createdAt string
		)
		if err := rows.Scan(&t.ID, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
