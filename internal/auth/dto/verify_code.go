package dto

import "time"

type VerifyCodeInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	Platform    string `json:"platform"`
	IPAddress   string `json:"-"`
	UserAgent   string `json:"-"`
}

// UserAuth is the token bundle returned by verify-code and refresh.
type UserAuth struct {
	UserID       string    `json:"userId"`
	PhoneNumber  string    `json:"phoneNumber"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	IsNewUser    bool      `json:"isNewUser"`
}
