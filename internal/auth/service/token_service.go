package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/superadriano/hana-backend/internal/auth/service TokenGenerator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

type TokenGenerator interface {
	GenerateAccessToken(userID, phoneNumber string) (string, time.Time, error)
	GenerateRefreshToken() string
	HashToken(token string) string
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type TokenService struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	TokenType   string `json:"token_type"`
}

func NewTokenService(secret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		Secret:             secret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) GenerateAccessToken(userID, phoneNumber string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	claims := JWTCustomClaims{
		UserID:      userID,
		PhoneNumber: phoneNumber,
		TokenType:   accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// GenerateRefreshToken returns an opaque random token. It carries no claims;
// validity is decided purely by the stored row.
func (ts *TokenService) GenerateRefreshToken() string {
	return uuid.NewString()
}

// HashToken returns the hex sha256 digest of a raw access token. Sessions
// store this instead of the token itself.
func (ts *TokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType != accessTokenType {
		return nil, fmt.Errorf("unexpected token type: %s", claims.TokenType)
	}

	return claims, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}
