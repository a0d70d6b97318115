package domain

import "time"

type User struct {
	ID          string
	PhoneNumber string
	FullName    string
	HairColor   string
	IsOnboarded bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VerificationCode is a single-use SMS credential. Several rows may exist per
// phone number; only the newest unused, unexpired one is considered valid.
type VerificationCode struct {
	ID          string
	PhoneNumber string
	Code        string
	ExpiresAt   time.Time
	Used        bool
	Attempts    int
	CreatedAt   time.Time
}

type RefreshToken struct {
	ID         string
	UserID     string
	Token      string
	ExpiresAt  time.Time
	Revoked    bool
	DeviceInfo string
	CreatedAt  time.Time
}

// Session ties an issued access token to server-side liveness. Only the hash
// of the access token is stored, never the raw credential.
type Session struct {
	ID              string
	UserID          string
	AccessTokenHash string
	ExpiresAt       time.Time
	DeviceInfo      string
	IPAddress       string
	CreatedAt       time.Time
}
