package service

import (
	"context"
	"log/slog"

	"github.com/bannerdeck/banner-server/internal/domain"
	domainerrors "github.com/bannerdeck/banner-server/internal/errors"
	"github.com/bannerdeck/banner-server/internal/store"
	"github.com/bannerdeck/banner-server/internal/validation"
)

// BannerService owns banner resolution and the admin CRUD surface.
type BannerService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBannerService creates a new banner service.
func NewBannerService(store store.Store, validator *validation.Validator, logger *slog.Logger) *BannerService {
	return &BannerService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateBannerRequest contains the data for a new banner.
type CreateBannerRequest struct {
	FeatureID int64   `json:"feature_id" validate:"required,gt=0"`
	TagIDs    []int64 `json:"tag_ids" validate:"dive,gt=0"`
	Content   string  `json:"content" validate:"required,json"`
	IsActive  bool    `json:"is_active"`
}

// PatchBannerRequest contains the optional fields of a partial update.
// Nil fields are left unchanged; a present tag_ids replaces the whole set.
type PatchBannerRequest struct {
	FeatureID *int64   `json:"feature_id" validate:"omitempty,gt=0"`
	TagIDs    *[]int64 `json:"tag_ids" validate:"omitempty,dive,gt=0"`
	Content   *string  `json:"content" validate:"omitempty,json"`
	IsActive  *bool    `json:"is_active"`
}

// ListBannersRequest narrows and slices the admin listing.
type ListBannersRequest struct {
	FeatureID *int64
	TagID     *int64
	Limit     *int
	Offset    int
}

// Resolve returns the content of the single active banner for a
// (feature, tag) pair. The tag must exist and the banner must be active;
// otherwise the lookup reports not found. When several active banners
// match, the one with the lowest ID wins.
//
// useLastRevision is accepted for wire compatibility and currently
// ignored; every resolve reads the store directly.
func (s *BannerService) Resolve(ctx context.Context, featureID, tagID int64, useLastRevision bool) (string, error) {
	_ = useLastRevision

	if _, err := s.store.GetTag(ctx, tagID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return "", domainerrors.NotFound("banner not found")
		}
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "look up tag")
	}

	limit := 1
	banners, err := s.store.QueryBanners(ctx, store.BannerFilter{
		FeatureID:  &featureID,
		TagID:      &tagID,
		ActiveOnly: true,
		Limit:      &limit,
	})
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "query banners")
	}
	if len(banners) == 0 {
		return "", domainerrors.NotFound("banner not found")
	}

	return banners[0].Content, nil
}

// List returns banners matching the filter, ordered by banner ID.
// A filter on a tag nobody registered yields an empty list.
func (s *BannerService) List(ctx context.Context, req ListBannersRequest) ([]*domain.Banner, error) {
	if req.TagID != nil {
		_, err := s.store.GetTag(ctx, *req.TagID)
		if domainerrors.Is(err, store.ErrNotFound) {
			return []*domain.Banner{}, nil
		}
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "look up tag")
		}
	}

	banners, err := s.store.QueryBanners(ctx, store.BannerFilter{
		FeatureID: req.FeatureID,
		TagID:     req.TagID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "query banners")
	}

	return banners, nil
}

// Create validates the request and persists a new banner with its tag
// associations. Unknown tags are registered implicitly.
func (s *BannerService) Create(ctx context.Context, req CreateBannerRequest) (int64, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	bannerID, err := s.store.CreateBanner(ctx, req.FeatureID, req.Content, req.IsActive, req.TagIDs)
	if err != nil {
		return 0, domainerrors.Wrap(err, domainerrors.CodeInternal, "create banner")
	}

	s.logger.Info("banner created",
		"banner_id", bannerID,
		"feature_id", req.FeatureID,
		"tag_count", len(req.TagIDs),
	)

	return bannerID, nil
}

// Patch applies a partial update to an existing banner.
func (s *BannerService) Patch(ctx context.Context, bannerID int64, req PatchBannerRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	patch := domain.BannerPatch{
		FeatureID: req.FeatureID,
		Content:   req.Content,
		IsActive:  req.IsActive,
		TagIDs:    req.TagIDs,
	}

	err := s.store.PatchBanner(ctx, bannerID, patch)
	if domainerrors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("banner not found")
	}
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "patch banner")
	}

	s.logger.Info("banner patched", "banner_id", bannerID)
	return nil
}

// Delete removes a banner and its tag associations. Deleting the same
// banner twice reports not found the second time.
func (s *BannerService) Delete(ctx context.Context, bannerID int64) error {
	err := s.store.DeleteBanner(ctx, bannerID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("banner not found")
	}
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "delete banner")
	}

	s.logger.Info("banner deleted", "banner_id", bannerID)
	return nil
}
