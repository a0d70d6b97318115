package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superadriano/hana-backend/internal/card/domain"
	"github.com/superadriano/hana-backend/internal/card/dto"
	"github.com/superadriano/hana-backend/internal/card/service"
	autherror "github.com/superadriano/hana-backend/internal/errors"
	"github.com/superadriano/hana-backend/internal/mocks"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestCardService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	var stored *domain.PersonCard
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, card *domain.PersonCard) error {
			stored = card
			return nil
		})

	ts := time.Now().Add(-time.Hour)
	card, err := s.Create(context.Background(), "user-1", dto.CreateCardInput{
		Name:      "Alex from the gym",
		Context:   "spotted me on bench",
		Timestamp: ts,
		Location: &dto.LocationInput{
			Latitude:  floatPtr(37.7749),
			Longitude: floatPtr(-122.4194),
			Geohash:   strPtr("9q8yy"),
		},
		IsDiscoverable: true,
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, stored, card)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "user-1", card.UserID)
	assert.Equal(t, "Alex from the gym", card.Name)
	assert.Equal(t, ts, card.Timestamp)
	assert.Equal(t, "none", card.MatchStatus)
	assert.True(t, card.IsDiscoverable)
	require.NotNil(t, card.Latitude)
	assert.Equal(t, 37.7749, *card.Latitude)
	assert.Equal(t, "9q8yy", *card.Geohash)
}

func TestCardService_Create_NoLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	card, err := s.Create(context.Background(), "user-1", dto.CreateCardInput{
		Name:      "Sam",
		Timestamp: time.Now(),
	})

	require.NoError(t, err)
	assert.Nil(t, card.Latitude)
	assert.Nil(t, card.Longitude)
	assert.Nil(t, card.Geohash)
}

func TestCardService_List_DefaultsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	mockRepo.EXPECT().ListByUser(gomock.Any(), "user-1", domain.ListFilter{Limit: 50}).
		Return([]domain.PersonCard{{ID: "card-1"}}, nil)

	cards, err := s.List(context.Background(), "user-1", domain.ListFilter{Limit: 0, Offset: -3})

	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestCardService_Update_PreservesMatchStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	existing := &domain.PersonCard{ID: "card-1", UserID: "user-1", Name: "Alex", MatchStatus: "matched"}

	mockRepo.EXPECT().GetByIDForUser(gomock.Any(), "card-1", "user-1").Return(existing, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, card *domain.PersonCard) error {
			assert.Equal(t, "Alexandra", card.Name)
			assert.Equal(t, "matched", card.MatchStatus)
			return nil
		})

	err := s.Update(context.Background(), "user-1", "card-1", dto.UpdateCardInput{
		Name: "Alexandra",
	})

	assert.NoError(t, err)
}

func TestCardService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	mockRepo.EXPECT().GetByIDForUser(gomock.Any(), "ghost", "user-1").Return(nil, nil)

	err := s.Update(context.Background(), "user-1", "ghost", dto.UpdateCardInput{Name: "x"})

	assert.ErrorIs(t, err, autherror.ErrCardNotFound)
}

func TestCardService_Delete_OtherUsersCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	// Ownership scoping makes someone else's card indistinguishable from a
	// missing one.
	mockRepo.EXPECT().GetByIDForUser(gomock.Any(), "card-1", "user-2").Return(nil, nil)

	err := s.Delete(context.Background(), "user-2", "card-1")

	assert.ErrorIs(t, err, autherror.ErrCardNotFound)
}

func TestCardService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	mockRepo.EXPECT().GetByIDForUser(gomock.Any(), "card-1", "user-1").
		Return(&domain.PersonCard{ID: "card-1", UserID: "user-1"}, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), "card-1").Return(nil)

	assert.NoError(t, s.Delete(context.Background(), "user-1", "card-1"))
}

func TestCardService_SetDiscoverable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCardRepository(ctrl)
	s := service.NewCardService(mockRepo)

	mockRepo.EXPECT().GetByIDForUser(gomock.Any(), "card-1", "user-1").
		Return(&domain.PersonCard{ID: "card-1", UserID: "user-1"}, nil)
	mockRepo.EXPECT().SetDiscoverable(gomock.Any(), "card-1", true).Return(nil)

	assert.NoError(t, s.SetDiscoverable(context.Background(), "user-1", "card-1", true))
}
