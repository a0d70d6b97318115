package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superadriano/hana-backend/internal/card/domain"
	"github.com/superadriano/hana-backend/internal/card/repository/postgres"
)

var cardColumns = []string{
	"id", "user_id", "name", "context", "timestamp", "latitude", "longitude",
	"geohash", "is_discoverable", "match_status", "created_at",
}

func newMockRepo(t *testing.T) (*postgres.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return postgres.NewPostgresRepository(mock), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	lat, lon, geohash := 37.7749, -122.4194, "9q8yy"
	card := &domain.PersonCard{
		ID:             "card-1",
		UserID:         "user-1",
		Name:           "Alex",
		Context:        "coffee shop",
		Timestamp:      now.Add(-time.Hour),
		Latitude:       &lat,
		Longitude:      &lon,
		Geohash:        &geohash,
		IsDiscoverable: true,
		MatchStatus:    "none",
		CreatedAt:      now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO person_cards")).
		WithArgs(card.ID, card.UserID, card.Name, card.Context, card.Timestamp,
			card.Latitude, card.Longitude, card.Geohash, card.IsDiscoverable,
			card.MatchStatus, card.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), card))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_NoFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := pgxmock.NewRows(cardColumns).
		AddRow("card-1", "user-1", "Alex", "gym", now, nil, nil, nil, true, "none", now).
		AddRow("card-2", "user-1", "Sam", "", now, nil, nil, nil, false, "matched", now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM person_cards")).
		WithArgs("user-1", 50, 0).
		WillReturnRows(rows)

	cards, err := repo.ListByUser(context.Background(), "user-1", domain.ListFilter{Limit: 50})

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "card-1", cards[0].ID)
	assert.Nil(t, cards[0].Latitude)
	assert.Equal(t, "matched", cards[1].MatchStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_DiscoverableFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	discoverable := true

	mock.ExpectQuery(regexp.QuoteMeta("AND is_discoverable = $2")).
		WithArgs("user-1", true, 10, 20).
		WillReturnRows(pgxmock.NewRows(cardColumns))

	cards, err := repo.ListByUser(context.Background(), "user-1", domain.ListFilter{
		Limit:        10,
		Offset:       20,
		Discoverable: &discoverable,
	})

	assert.NoError(t, err)
	assert.Empty(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUser_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM person_cards")).
		WithArgs("card-1", "user-2").
		WillReturnRows(pgxmock.NewRows(cardColumns))

	card, err := repo.GetByIDForUser(context.Background(), "card-1", "user-2")

	assert.NoError(t, err)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	card := &domain.PersonCard{
		ID:          "card-1",
		Name:        "Alexandra",
		Context:     "gym",
		MatchStatus: "matched",
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE person_cards")).
		WithArgs(card.Name, card.Context, card.IsDiscoverable, card.MatchStatus, card.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(context.Background(), card))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM person_cards WHERE id = $1")).
		WithArgs("card-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), "card-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetDiscoverable(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE person_cards SET is_discoverable = $1 WHERE id = $2")).
		WithArgs(false, "card-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetDiscoverable(context.Background(), "card-1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
