package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/superadriano/hana-backend/internal/auth/domain Repository

import "context"

// SweepResult reports how many rows each table lost during a purge.
type SweepResult struct {
	RefreshTokens     int64
	Sessions          int64
	VerificationCodes int64
}

type Repository interface {
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUserProfile(ctx context.Context, id, fullName, hairColor string) error

	CreateVerificationCode(ctx context.Context, vc *VerificationCode) error
	GetActiveVerificationCode(ctx context.Context, phone, code string) (*VerificationCode, error)
	// ConsumeVerificationCode flips the used flag and reports whether this
	// caller won the row; a second consumption attempt returns false.
	ConsumeVerificationCode(ctx context.Context, id string) (bool, error)
	IncrementCodeAttempts(ctx context.Context, phone string) error

	StoreRefreshToken(ctx context.Context, rt *RefreshToken) error
	GetActiveRefreshToken(ctx context.Context, token string) (*RefreshToken, *User, error)
	// RotateRefreshToken revokes the old row and records the replacement
	// token and session in a single transaction.
	RotateRefreshToken(ctx context.Context, oldID string, rt *RefreshToken, session *Session) error
	RevokeRefreshToken(ctx context.Context, token string) error

	StoreSession(ctx context.Context, session *Session) error
	GetLatestActiveSession(ctx context.Context, userID string) (*Session, error)

	DeleteExpired(ctx context.Context) (SweepResult, error)
}
