package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/superadriano/hana-backend/internal/card/domain"
	"github.com/superadriano/hana-backend/internal/card/dto"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

const (
	defaultListLimit   = 50
	defaultMatchStatus = "none"
)

type CardService struct {
	repo domain.Repository
}

func NewCardService(repo domain.Repository) *CardService {
	return &CardService{repo: repo}
}

func (s *CardService) Create(ctx context.Context, userID string, input dto.CreateCardInput) (*domain.PersonCard, error) {
	card := &domain.PersonCard{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           input.Name,
		Context:        input.Context,
		Timestamp:      input.Timestamp,
		IsDiscoverable: input.IsDiscoverable,
		MatchStatus:    defaultMatchStatus,
		CreatedAt:      time.Now(),
	}

	if input.Location != nil {
		card.Latitude = input.Location.Latitude
		card.Longitude = input.Location.Longitude
		card.Geohash = input.Location.Geohash
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

func (s *CardService) List(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.PersonCard, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *CardService) Update(ctx context.Context, userID, id string, input dto.UpdateCardInput) error {
	card, err := s.ownedCard(ctx, id, userID)
	if err != nil {
		return err
	}

	card.Name = input.Name
	card.Context = input.Context
	card.IsDiscoverable = input.IsDiscoverable
	if input.MatchStatus != "" {
		card.MatchStatus = input.MatchStatus
	}

	return s.repo.Update(ctx, card)
}

func (s *CardService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedCard(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *CardService) SetDiscoverable(ctx context.Context, userID, id string, discoverable bool) error {
	if _, err := s.ownedCard(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.SetDiscoverable(ctx, id, discoverable)
}

func (s *CardService) ownedCard(ctx context.Context, id, userID string) (*domain.PersonCard, error) {
	card, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, autherror.ErrCardNotFound
	}

	return card, nil
}
