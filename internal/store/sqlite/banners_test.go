package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bannerdeck/banner-server/internal/domain"
	"github.com/bannerdeck/banner-server/internal/store"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateBanner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBanner(ctx, 1, `{"title":"hello"}`, true, []int64{10, 20})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero banner ID")
	}

	b, err := s.GetBanner(ctx, id)
	if err != nil {
		t.Fatalf("GetBanner: %v", err)
	}
	if b.FeatureID != 1 {
		t.Errorf("FeatureID: got %d, want 1", b.FeatureID)
	}
	if b.Content != `{"title":"hello"}` {
		t.Errorf("Content: got %q", b.Content)
	}
	if !b.IsActive {
		t.Error("IsActive: expected true")
	}
	if len(b.TagIDs) != 2 || b.TagIDs[0] != 10 || b.TagIDs[1] != 20 {
		t.Errorf("TagIDs: got %v, want [10 20]", b.TagIDs)
	}
	if !b.HasTag(10) || !b.HasTag(20) || b.HasTag(30) {
		t.Errorf("HasTag: unexpected result for %v", b.TagIDs)
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
		t.Error("expected non-zero timestamps")
	}

	// Tags were created implicitly.
	for _, tagID := range []int64{10, 20} {
		if _, err := s.GetTag(ctx, tagID); err != nil {
			t.Errorf("GetTag(%d) after create: %v", tagID, err)
		}
	}
}

func TestCreateBanner_DuplicateTagIDsCollapse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBanner(ctx, 1, "{}", true, []int64{5, 5, 5})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	b, err := s.GetBanner(ctx, id)
	if err != nil {
		t.Fatalf("GetBanner: %v", err)
	}
	if len(b.TagIDs) != 1 || b.TagIDs[0] != 5 {
		t.Errorf("TagIDs: got %v, want [5]", b.TagIDs)
	}
}

func TestCreateBanner_IDsNeverReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateBanner(ctx, 1, "{}", true, nil)
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	if err := s.DeleteBanner(ctx, first); err != nil {
		t.Fatalf("DeleteBanner: %v", err)
	}

	second, err := s.CreateBanner(ctx, 1, "{}", true, nil)
	if err != nil {
		t.Fatalf("CreateBanner (second): %v", err)
	}
	if second <= first {
		t.Errorf("expected new ID above %d, got %d", first, second)
	}
}

func TestCreateBanner_EmptyContent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateBanner(context.Background(), 1, "", true, nil)
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetBanner_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBanner(context.Background(), 12345)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPatchBanner_PartialFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBanner(ctx, 1, "old", true, []int64{10})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	before, err := s.GetBanner(ctx, id)
	if err != nil {
		t.Fatalf("GetBanner: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	err = s.PatchBanner(ctx, id, domain.BannerPatch{Content: strPtr("new")})
	if err != nil {
		t.Fatalf("PatchBanner: %v", err)
	}

	after, err := s.GetBanner(ctx, id)
	if err != nil {
		t.Fatalf("GetBanner after patch: %v", err)
	}
	if after.Content != "new" {
		t.Errorf("Content: got %q, want %q", after.Content, "new")
	}
	// Untouched fields survive.
	if after.FeatureID != 1 {
		t.Errorf("FeatureID changed: got %d", after.FeatureID)
	}
	if !after.IsActive {
		t.Error("IsActive changed")
	}
	if len(after.TagIDs) != 1 || after.TagIDs[0] != 10 {
		t.Errorf("TagIDs changed: got %v", after.TagIDs)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v vs %v", after.UpdatedAt, before.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("CreatedAt changed: %v vs %v", after.CreatedAt, before.CreatedAt)
	}
}

func TestPatchBanner_ReplaceTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBanner(ctx, 1, "{}", true, []int64{10, 20})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	err = s.PatchBanner(ctx, id, domain.BannerPatch{TagIDs: &[]int64{20, 30}})
	if err != nil {
		t.Fatalf("PatchBanner: %v", err)
	}

	b, err := s.GetBanner(ctx, id)
	if err != nil {
		t.Fatalf("GetBanner: %v", err)
	}
	if len(b.TagIDs) != 2 || b.TagIDs[0] != 20 || b.TagIDs[1] != 30 {
		t.Errorf("TagIDs: got %v, want [20 30]", b.TagIDs)
	}

	// The dropped tag stays in the registry.
	if _, err := s.GetTag(ctx, 10); err != nil {
		t.Errorf("GetTag(10) after replace: %v", err)
	}
}

func TestPatchBanner_ClearTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBanner(ctx, 1, "{}", true, []int64{10})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	// An explicit empty list clears all associations; a nil pointer would
	// leave them alone.
	err = s.PatchBanner(ctx, id, domain.BannerPatch{TagIDs: &[]int64{}})
	if err != nil {
		t.Fatalf("PatchBanner: %v", err)
	}

	b, err := s.GetBanner(ctx, id)
	if err != nil {
		t.Fatalf("GetBanner: %v", err)
	}
	if len(b.TagIDs) != 0 {
		t.Errorf("TagIDs: got %v, want empty", b.TagIDs)
	}
}

func TestPatchBanner_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.PatchBanner(context.Background(), 999, domain.BannerPatch{Content: strPtr("x")})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBanner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBanner(ctx, 1, "{}", true, []int64{10})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	if err := s.DeleteBanner(ctx, id); err != nil {
		t.Fatalf("DeleteBanner: %v", err)
	}

	if _, err := s.GetBanner(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Second delete of the same ID reports not-found.
	if err := s.DeleteBanner(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}

	// Tag registry is untouched by banner deletion.
	if _, err := s.GetTag(ctx, 10); err != nil {
		t.Errorf("GetTag(10) after delete: %v", err)
	}
}

func TestQueryBanners_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// banner 1: feature 1, tags {10, 20}, active
	// banner 2: feature 1, tags {20},     inactive
	// banner 3: feature 2, tags {10},     active
	id1, err := s.CreateBanner(ctx, 1, "b1", true, []int64{10, 20})
	if err != nil {
		t.Fatalf("CreateBanner 1: %v", err)
	}
	id2, err := s.CreateBanner(ctx, 1, "b2", false, []int64{20})
	if err != nil {
		t.Fatalf("CreateBanner 2: %v", err)
	}
	id3, err := s.CreateBanner(ctx, 2, "b3", true, []int64{10})
	if err != nil {
		t.Fatalf("CreateBanner 3: %v", err)
	}

	tests := []struct {
		name   string
		filter store.BannerFilter
		want   []int64
	}{
		{"no filter", store.BannerFilter{}, []int64{id1, id2, id3}},
		{"by feature", store.BannerFilter{FeatureID: int64Ptr(1)}, []int64{id1, id2}},
		{"by tag", store.BannerFilter{TagID: int64Ptr(10)}, []int64{id1, id3}},
		{"feature and tag", store.BannerFilter{FeatureID: int64Ptr(1), TagID: int64Ptr(20)}, []int64{id1, id2}},
		{"active only", store.BannerFilter{ActiveOnly: true}, []int64{id1, id3}},
		{"feature tag active", store.BannerFilter{FeatureID: int64Ptr(1), TagID: int64Ptr(20), ActiveOnly: true}, []int64{id1}},
		{"unknown tag", store.BannerFilter{TagID: int64Ptr(999)}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryBanners(ctx, tt.filter)
			if err != nil {
				t.Fatalf("QueryBanners: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d banners, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].ID != want {
					t.Errorf("item %d: got ID %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestQueryBanners_LimitOffset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		id, err := s.CreateBanner(ctx, 1, "{}", true, nil)
		if err != nil {
			t.Fatalf("CreateBanner %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	got, err := s.QueryBanners(ctx, store.BannerFilter{Limit: intPtr(2), Offset: 1})
	if err != nil {
		t.Fatalf("QueryBanners: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d banners, want 2", len(got))
	}
	if got[0].ID != ids[1] || got[1].ID != ids[2] {
		t.Errorf("got IDs [%d %d], want [%d %d]", got[0].ID, got[1].ID, ids[1], ids[2])
	}

	// Offset past the end yields an empty slice.
	got, err = s.QueryBanners(ctx, store.BannerFilter{Offset: 10})
	if err != nil {
		t.Fatalf("QueryBanners (offset past end): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d banners, want 0", len(got))
	}

	// Zero limit yields an empty slice.
	got, err = s.QueryBanners(ctx, store.BannerFilter{Limit: intPtr(0)})
	if err != nil {
		t.Fatalf("QueryBanners (zero limit): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d banners, want 0", len(got))
	}
}
