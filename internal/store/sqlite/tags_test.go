package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/bannerdeck/banner-server/internal/store"
)

func TestEnsureTag_CreatesWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, err := s.EnsureTag(ctx, 7)
	if err != nil {
		t.Fatalf("EnsureTag: %v", err)
	}
	if tag.ID != 7 {
		t.Errorf("ID: got %d, want 7", tag.ID)
	}
	if tag.CreatedAt.IsZero() {
		t.Error("CreatedAt: expected non-zero")
	}

	// Verify it was persisted.
	got, err := s.GetTag(ctx, 7)
	if err != nil {
		t.Fatalf("GetTag after ensure: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("persisted ID: got %d, want 7", got.ID)
	}
}

func TestEnsureTag_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.EnsureTag(ctx, 42)
	if err != nil {
		t.Fatalf("EnsureTag (create): %v", err)
	}

	// Second ensure must be a successful no-op, not a duplicate-key error.
	second, err := s.EnsureTag(ctx, 42)
	if err != nil {
		t.Fatalf("EnsureTag (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same tag ID %d, got %d", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on repeat ensure: %v vs %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestGetTag_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetTag(ctx, 999)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 tags, got %d", len(got))
	}

	// Insert out of order; listing sorts by ID.
	for _, id := range []int64{30, 10, 20} {
		if _, err := s.EnsureTag(ctx, id); err != nil {
			t.Fatalf("EnsureTag(%d): %v", id, err)
		}
	}

	got, err = s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(got))
	}
	for i, want := range []int64{10, 20, 30} {
		if got[i].ID != want {
			t.Errorf("item %d: got ID %d, want %d", i, got[i].ID, want)
		}
	}
}
