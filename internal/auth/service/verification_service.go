package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/superadriano/hana-backend/config"
	"github.com/superadriano/hana-backend/internal/auth/domain"
	"github.com/superadriano/hana-backend/internal/auth/dto"
	autherror "github.com/superadriano/hana-backend/internal/errors"
	"github.com/superadriano/hana-backend/internal/ratelimit"
	"github.com/superadriano/hana-backend/internal/sms"
	"github.com/superadriano/hana-backend/pkg/constant"
)

// AuthService owns the verification-code lifecycle and the token/session
// state machine built on top of it.
type AuthService struct {
	repo    domain.Repository
	tokens  TokenGenerator
	limiter ratelimit.Limiter
	sender  sms.Sender
	codeTTL time.Duration
	log     *zap.Logger
}

func NewAuthService(
	repo domain.Repository,
	tokens TokenGenerator,
	limiter ratelimit.Limiter,
	sender sms.Sender,
	cfg *config.Config,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		limiter: limiter,
		sender:  sender,
		codeTTL: time.Duration(cfg.CodeExpiryMin) * time.Minute,
		log:     log,
	}
}

// RequestCode rate-limits, generates and persists a one-time code for the
// phone number, then dispatches it over SMS. The request id is returned, not
// the code.
func (s *AuthService) RequestCode(ctx context.Context, input dto.SendCodeInput) (string, error) {
	phone, err := NormalizePhoneNumber(input.PhoneNumber)
	if err != nil {
		return "", err
	}

	allowed, err := s.limiter.Allow(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("rate limiter check failed: %w", err)
	}
	if !allowed {
		return "", autherror.ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	vc := &domain.VerificationCode{
		ID:          uuid.NewString(),
		PhoneNumber: phone,
		Code:        code,
		ExpiresAt:   now.Add(s.codeTTL),
		CreatedAt:   now,
	}

	if err := s.repo.CreateVerificationCode(ctx, vc); err != nil {
		return "", err
	}

	body := fmt.Sprintf("Your Hana verification code is: %s. Valid for 10 minutes.", code)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		// Best-effort: the code is persisted and usable, so a failed
		// dispatch must not fail the request.
		s.log.Warn("sms dispatch failed",
			zap.String("phone_number", phone),
			zap.Error(err),
		)
	}

	return vc.ID, nil
}

// VerifyCode consumes the newest valid code for the phone number, creating
// the user on first verification, and issues an access/refresh token pair.
func (s *AuthService) VerifyCode(ctx context.Context, input dto.VerifyCodeInput) (*dto.UserAuth, error) {
	phone, err := NormalizePhoneNumber(input.PhoneNumber)
	if err != nil {
		return nil, err
	}

	vc, err := s.repo.GetActiveVerificationCode(ctx, phone, input.Code)
	if err != nil {
		return nil, err
	}
	if vc == nil {
		// Wrong, expired and already-used codes are indistinguishable to
		// the caller.
		if err := s.repo.IncrementCodeAttempts(ctx, phone); err != nil {
			s.log.Warn("failed to record verification attempt", zap.Error(err))
		}
		return nil, autherror.ErrInvalidCode
	}

	consumed, err := s.repo.ConsumeVerificationCode(ctx, vc.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// A concurrent attempt won the row.
		return nil, autherror.ErrInvalidCode
	}

	user, err := s.repo.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	isNewUser := false
	if user == nil {
		now := time.Now()
		user = &domain.User{
			ID:          uuid.NewString(),
			PhoneNumber: phone,
			FullName:    constant.PlaceholderFullName,
			HairColor:   constant.PlaceholderHairColor,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		isNewUser = true
	}

	return s.issueTokens(ctx, user, isNewUser, input.Platform, input.IPAddress)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, isNewUser bool, platform, ip string) (*dto.UserAuth, error) {
	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := s.tokens.GenerateRefreshToken()
	now := time.Now()

	rt := &domain.RefreshToken{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Token:      refreshToken,
		ExpiresAt:  now.Add(s.tokens.GetRefreshTokenExpiry()),
		DeviceInfo: platform,
		CreatedAt:  now,
	}
	if err := s.repo.StoreRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		AccessTokenHash: s.tokens.HashToken(accessToken),
		ExpiresAt:       expiresAt,
		DeviceInfo:      platform,
		IPAddress:       ip,
		CreatedAt:       now,
	}
	if err := s.repo.StoreSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.UserAuth{
		UserID:       user.ID,
		PhoneNumber:  user.PhoneNumber,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		IsNewUser:    isNewUser,
	}, nil
}

// generateCode draws a uniform 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
