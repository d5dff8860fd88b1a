package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bannerdeck/banner-server/internal/domain"
	"github.com/bannerdeck/banner-server/internal/service"
)

func (s *Server) registerBannerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveBanner",
		Method:      http.MethodGet,
		Path:        "/user_banner",
		Summary:     "Resolve banner",
		Description: "Returns the content of the active banner for a (feature, tag) pair",
		Tags:        []string{"Banners"},
		Security:    []map[string][]string{{"token": {}}},
	}, s.handleResolveBanner)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBanners",
		Method:      http.MethodGet,
		Path:        "/banner",
		Summary:     "List banners",
		Description: "Returns banners matching the optional feature and tag filters",
		Tags:        []string{"Banners"},
		Security:    []map[string][]string{{"token": {}}},
	}, s.handleListBanners)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBanner",
		Method:        http.MethodPost,
		Path:          "/banner",
		Summary:       "Create banner",
		Description:   "Creates a new banner with its tag associations",
		Tags:          []string{"Banners"},
		Security:      []map[string][]string{{"token": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBanner)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchBanner",
		Method:      http.MethodPatch,
		Path:        "/banner/{banner_id}",
		Summary:     "Patch banner",
		Description: "Partially updates a banner; omitted fields keep their values",
		Tags:        []string{"Banners"},
		Security:    []map[string][]string{{"token": {}}},
	}, s.handlePatchBanner)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBanner",
		Method:        http.MethodDelete,
		Path:          "/banner/{banner_id}",
		Summary:       "Delete banner",
		Description:   "Removes a banner and its tag associations",
		Tags:          []string{"Banners"},
		Security:      []map[string][]string{{"token": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBanner)
}

// === DTOs ===

// ResolveBannerInput contains parameters for resolving a banner.
type ResolveBannerInput struct {
	Token           string `header:"token" doc:"Access token"`
	TagID           int64  `query:"tag_id" required:"true" doc:"Tag ID"`
	FeatureID       int64  `query:"feature_id" required:"true" doc:"Feature ID"`
	UseLastRevision bool   `query:"use_last_revision" doc:"Allow serving cached content"`
}

// ResolveBannerOutput returns the banner content verbatim.
type ResolveBannerOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// BannerResponse contains banner data in API responses.
type BannerResponse struct {
	BannerID  int64     `json:"banner_id" doc:"Banner ID"`
	FeatureID int64     `json:"feature_id" doc:"Feature ID"`
	TagIDs    []int64   `json:"tag_ids" doc:"Associated tag IDs"`
	Content   string    `json:"content" doc:"Banner content"`
	IsActive  bool      `json:"is_active" doc:"Whether the banner is shown to users"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListBannersInput contains parameters for listing banners.
type ListBannersInput struct {
	Token     string `header:"token" doc:"Access token"`
	FeatureID *int64 `query:"feature_id" doc:"Filter by feature ID"`
	TagID     *int64 `query:"tag_id" doc:"Filter by tag ID"`
	Limit     *int   `query:"limit" minimum:"0" doc:"Maximum number of banners"`
	Offset    int    `query:"offset" minimum:"0" doc:"Number of banners to skip"`
}

// ListBannersOutput wraps the banner list for Huma.
type ListBannersOutput struct {
	Body []BannerResponse
}

// CreateBannerRequest is the request body for creating a banner.
type CreateBannerRequest struct {
	FeatureID int64   `json:"feature_id" minimum:"1" doc:"Feature ID"`
	TagIDs    []int64 `json:"tag_ids,omitempty" doc:"Tag IDs to associate; unknown tags are created"`
	Content   string  `json:"content" doc:"Banner content (serialized JSON)"`
	IsActive  *bool   `json:"is_active,omitempty" doc:"Whether the banner is shown to users (default true)"`
}

// CreateBannerInput wraps the create banner request for Huma.
type CreateBannerInput struct {
	Token string `header:"token" doc:"Access token"`
	Body  CreateBannerRequest
}

// CreateBannerResponse contains the assigned banner ID.
type CreateBannerResponse struct {
	BannerID int64 `json:"banner_id" doc:"Assigned banner ID"`
}

// CreateBannerOutput wraps the create banner response for Huma.
type CreateBannerOutput struct {
	Body CreateBannerResponse
}

// PatchBannerRequest is the request body for partially updating a banner.
type PatchBannerRequest struct {
	FeatureID *int64   `json:"feature_id,omitempty" minimum:"1" doc:"New feature ID"`
	TagIDs    *[]int64 `json:"tag_ids,omitempty" doc:"Replacement tag set; an empty list clears all associations"`
	Content   *string  `json:"content,omitempty" doc:"New banner content"`
	IsActive  *bool    `json:"is_active,omitempty" doc:"New active flag"`
}

// PatchBannerInput wraps the patch banner request for Huma.
type PatchBannerInput struct {
	Token    string `header:"token" doc:"Access token"`
	BannerID int64  `path:"banner_id" doc:"Banner ID"`
	Body     PatchBannerRequest
}

// DeleteBannerInput contains parameters for deleting a banner.
type DeleteBannerInput struct {
	Token    string `header:"token" doc:"Access token"`
	BannerID int64  `path:"banner_id" doc:"Banner ID"`
}

// === Handlers ===

func (s *Server) handleResolveBanner(ctx context.Context, input *ResolveBannerInput) (*ResolveBannerOutput, error) {
	if _, err := s.auth.Authenticate(ctx, input.Token); err != nil {
		return nil, err
	}

	content, err := s.banners.Resolve(ctx, input.FeatureID, input.TagID, input.UseLastRevision)
	if err != nil {
		return nil, err
	}

	return &ResolveBannerOutput{
		ContentType: "application/json",
		Body:        []byte(content),
	}, nil
}

func (s *Server) handleListBanners(ctx context.Context, input *ListBannersInput) (*ListBannersOutput, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, input.Token); err != nil {
		return nil, err
	}

	banners, err := s.banners.List(ctx, service.ListBannersRequest{
		FeatureID: input.FeatureID,
		TagID:     input.TagID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]BannerResponse, len(banners))
	for i, b := range banners {
		resp[i] = toBannerResponse(b)
	}

	return &ListBannersOutput{Body: resp}, nil
}

func (s *Server) handleCreateBanner(ctx context.Context, input *CreateBannerInput) (*CreateBannerOutput, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, input.Token); err != nil {
		return nil, err
	}

	active := true
	if input.Body.IsActive != nil {
		active = *input.Body.IsActive
	}

	bannerID, err := s.banners.Create(ctx, service.CreateBannerRequest{
		FeatureID: input.Body.FeatureID,
		TagIDs:    input.Body.TagIDs,
		Content:   input.Body.Content,
		IsActive:  active,
	})
	if err != nil {
		return nil, err
	}

	return &CreateBannerOutput{Body: CreateBannerResponse{BannerID: bannerID}}, nil
}

func (s *Server) handlePatchBanner(ctx context.Context, input *PatchBannerInput) (*struct{}, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, input.Token); err != nil {
		return nil, err
	}

	err := s.banners.Patch(ctx, input.BannerID, service.PatchBannerRequest{
		FeatureID: input.Body.FeatureID,
		TagIDs:    input.Body.TagIDs,
		Content:   input.Body.Content,
		IsActive:  input.Body.IsActive,
	})
	if err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func (s *Server) handleDeleteBanner(ctx context.Context, input *DeleteBannerInput) (*struct{}, error) {
	if _, err := s.auth.AuthenticateAdmin(ctx, input.Token); err != nil {
		return nil, err
	}

	if err := s.banners.Delete(ctx, input.BannerID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func toBannerResponse(b *domain.Banner) BannerResponse {
	return BannerResponse{
		BannerID:  b.ID,
		FeatureID: b.FeatureID,
		TagIDs:    b.TagIDs,
		Content:   b.Content,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
