package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/superadriano/hana-backend/internal/auth/domain"
	"github.com/superadriano/hana-backend/internal/auth/dto"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

// UserContext is what an authenticated request gets to see about its caller.
type UserContext struct {
	UserID      string
	PhoneNumber string
	FullName    string
	HairColor   string
	IsOnboarded bool
	Claims      *JWTCustomClaims
}

// Authenticate validates a bearer access token and requires a live session
// row on top of the signature check, so a sweep or forced logout invalidates
// the token before its own expiry.
func (s *AuthService) Authenticate(ctx context.Context, bearerToken string) (*UserContext, error) {
	claims, err := s.tokens.VerifyAccessToken(bearerToken)
	if err != nil {
		return nil, autherror.ErrInvalidToken
	}

	session, err := s.repo.GetLatestActiveSession(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, autherror.ErrSessionExpired
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return &UserContext{
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		FullName:    user.FullName,
		HairColor:   user.HairColor,
		IsOnboarded: user.IsOnboarded,
		Claims:      claims,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// token pair plus session is recorded, all inside one transaction. A replayed
// token fails.
func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.UserAuth, error) {
	rt, user, err := s.repo.GetActiveRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if rt == nil || user == nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.PhoneNumber)
	if err != nil {
		return nil, err
	}

	refreshToken := s.tokens.GenerateRefreshToken()
	now := time.Now()

	newRT := &domain.RefreshToken{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Token:      refreshToken,
		ExpiresAt:  now.Add(s.tokens.GetRefreshTokenExpiry()),
		DeviceInfo: input.Platform,
		CreatedAt:  now,
	}
	session := &domain.Session{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		AccessTokenHash: s.tokens.HashToken(accessToken),
		ExpiresAt:       expiresAt,
		DeviceInfo:      input.Platform,
		IPAddress:       input.IPAddress,
		CreatedAt:       now,
	}

	if err := s.repo.RotateRefreshToken(ctx, rt.ID, newRT, session); err != nil {
		return nil, err
	}

	return &dto.UserAuth{
		UserID:       user.ID,
		PhoneNumber:  user.PhoneNumber,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout revokes the given refresh token. Unknown tokens are a no-op; the
// caller always sees success.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.RevokeRefreshToken(ctx, refreshToken)
}

// GetProfile loads the caller's current user row.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile sets the caller's display name and profile attribute and
// marks them onboarded.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input dto.ProfileInput) error {
	return s.repo.UpdateUserProfile(ctx, userID, input.FullName, input.HairColor)
}
