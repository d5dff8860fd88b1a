// Package store defines the persistence interface for the banner server.
package store

import (
	"context"

	"github.com/bannerdeck/banner-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Every mutating banner operation is transactional: a reader never observes a
// banner whose scalar fields and tag associations come from different writes.
type Store interface {
	// Lifecycle
	Close() error

	// Users. The HTTP surface reads users for authorization only; writes come
	// from the seed tool.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByToken(ctx context.Context, token string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Tags
	EnsureTag(ctx context.Context, tagID int64) (*domain.Tag, error)
	GetTag(ctx context.Context, tagID int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// Banners
	CreateBanner(ctx context.Context, featureID int64, content string, isActive bool, tagIDs []int64) (int64, error)
	GetBanner(ctx context.Context, bannerID int64) (*domain.Banner, error)
	PatchBanner(ctx context.Context, bannerID int64, patch domain.BannerPatch) error
	DeleteBanner(ctx context.Context, bannerID int64) error
	QueryBanners(ctx context.Context, filter BannerFilter) ([]*domain.Banner, error)
}

// BannerFilter selects banners in QueryBanners. Nil predicate fields impose
// no constraint; supplied predicates compose with AND. Results are always
// ordered by banner ID ascending, so Limit/Offset slice a deterministic
// sequence.
type BannerFilter struct {
	FeatureID  *int64
	TagID      *int64
	ActiveOnly bool
	Limit      *int // nil means no limit
	Offset     int
}
