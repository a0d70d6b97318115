package dto

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
	Platform     string `json:"platform"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type LogoutInput struct {
	RefreshToken string `json:"refreshToken"`
}
