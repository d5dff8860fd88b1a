package service

import (
	"context"
	"log/slog"

	"github.com/bannerdeck/banner-server/internal/domain"
	domainerrors "github.com/bannerdeck/banner-server/internal/errors"
	"github.com/bannerdeck/banner-server/internal/store"
)

// AuthService resolves opaque access tokens to users and enforces the
// admin gate on management endpoints.
type AuthService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		logger: logger,
	}
}

// Authenticate resolves a token to its user.
// An empty or unknown token yields an unauthorized error.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domainerrors.Unauthorized("missing token")
	}

	user, err := s.store.GetUserByToken(ctx, token)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.Unauthorized("invalid token")
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "look up token")
	}

	return user, nil
}

// AuthenticateAdmin resolves a token and requires the admin role.
// Token problems report unauthorized; a valid non-admin token reports
// forbidden, so the two failure modes stay distinguishable.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		s.logger.Warn("non-admin token on admin endpoint", "user_id", user.ID)
		return nil, domainerrors.Forbidden("admin access required")
	}

	return user, nil
}
