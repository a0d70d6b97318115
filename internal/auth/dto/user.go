package dto

import "time"

type ProfileInput struct {
	FullName  string `json:"fullName" validate:"required"`
	HairColor string `json:"hairColor" validate:"required"`
	Platform  string `json:"platform"`
}

type ProfileOutput struct {
	UserID      string    `json:"userId"`
	PhoneNumber string    `json:"phoneNumber"`
	FullName    string    `json:"fullName"`
	HairColor   string    `json:"hairColor"`
	IsOnboarded bool      `json:"isOnboarded"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
