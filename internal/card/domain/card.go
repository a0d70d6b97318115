package domain

//go:generate mockgen -destination=../../mocks/mock_card_repository.go -package=mocks -mock_names=Repository=MockCardRepository github.com/superadriano/hana-backend/internal/card/domain Repository

import (
	"context"
	"time"
)

// PersonCard is a user-owned, optionally location-tagged note about a person.
type PersonCard struct {
	ID             string
	UserID         string
	Name           string
	Context        string
	Timestamp      time.Time
	Latitude       *float64
	Longitude      *float64
	Geohash        *string
	IsDiscoverable bool
	MatchStatus    string
	CreatedAt      time.Time
}

// ListFilter narrows a card listing. Discoverable nil means no filter.
type ListFilter struct {
	Limit        int
	Offset       int
	Discoverable *bool
}

type Repository interface {
	Create(ctx context.Context, card *PersonCard) error
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]PersonCard, error)
	// GetByIDForUser returns nil when the card does not exist or belongs to
	// someone else; callers cannot tell the difference.
	GetByIDForUser(ctx context.Context, id, userID string) (*PersonCard, error)
	Update(ctx context.Context, card *PersonCard) error
	Delete(ctx context.Context, id string) error
	SetDiscoverable(ctx context.Context, id string, discoverable bool) error
}
