package dto

import (
	"time"

	"github.com/superadriano/hana-backend/internal/card/domain"
)

type LocationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Geohash   *string  `json:"geohash"`
}

type CreateCardInput struct {
	Name           string         `json:"name" validate:"required"`
	Context        string         `json:"context"`
	Timestamp      time.Time      `json:"timestamp" validate:"required"`
	Location       *LocationInput `json:"location"`
	IsDiscoverable bool           `json:"isDiscoverable"`
	Platform       string         `json:"platform"`
}

type UpdateCardInput struct {
	Name           string `json:"name" validate:"required"`
	Context        string `json:"context"`
	IsDiscoverable bool   `json:"isDiscoverable"`
	MatchStatus    string `json:"matchStatus"`
}

type ToggleDiscoverableInput struct {
	IsDiscoverable bool `json:"isDiscoverable"`
}

type CardOutput struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Context        string         `json:"context"`
	Timestamp      time.Time      `json:"timestamp"`
	Location       *LocationInput `json:"location,omitempty"`
	IsDiscoverable bool           `json:"isDiscoverable"`
	MatchStatus    string         `json:"matchStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func CardOutputFrom(card *domain.PersonCard) CardOutput {
	out := CardOutput{
		ID:             card.ID,
		Name:           card.Name,
		Context:        card.Context,
		Timestamp:      card.Timestamp,
		IsDiscoverable: card.IsDiscoverable,
		MatchStatus:    card.MatchStatus,
		CreatedAt:      card.CreatedAt,
	}

	if card.Latitude != nil || card.Longitude != nil || card.Geohash != nil {
		out.Location = &LocationInput{
			Latitude:  card.Latitude,
			Longitude: card.Longitude,
			Geohash:   card.Geohash,
		}
	}

	return out
}
