package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/superadriano/hana-backend/internal/card/domain"
)

type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, card *domain.PersonCard) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO person_cards (id, user_id, name, context, timestamp, latitude, longitude, geohash, is_discoverable, match_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, card.ID, card.UserID, card.Name, card.Context, card.Timestamp,
		card.Latitude, card.Longitude, card.Geohash, card.IsDiscoverable,
		card.MatchStatus, card.CreatedAt)

	return err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.PersonCard, error) {
	query := `
		SELECT id, user_id, name, context, timestamp, latitude, longitude, geohash, is_discoverable, match_status, created_at
		FROM person_cards
		WHERE user_id = $1
	`
	args := []any{userID}

	if filter.Discoverable != nil {
		query += fmt.Sprintf(" AND is_discoverable = $%d", len(args)+1)
		args = append(args, *filter.Discoverable)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list person cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.PersonCard
	for rows.Next() {
		var card domain.PersonCard
		err := rows.Scan(&card.ID, &card.UserID, &card.Name, &card.Context,
			&card.Timestamp, &card.Latitude, &card.Longitude, &card.Geohash,
			&card.IsDiscoverable, &card.MatchStatus, &card.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person card: %w", err)
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

func (r *PostgresRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.PersonCard, error) {
	query := `
		SELECT id, user_id, name, context, timestamp, latitude, longitude, geohash, is_discoverable, match_status, created_at
		FROM person_cards
		WHERE id = $1 AND user_id = $2
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id, userID)

	var card domain.PersonCard
	err := row.Scan(&card.ID, &card.UserID, &card.Name, &card.Context,
		&card.Timestamp, &card.Latitude, &card.Longitude, &card.Geohash,
		&card.IsDiscoverable, &card.MatchStatus, &card.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person card: %w", err)
	}

	return &card, nil
}

func (r *PostgresRepository) Update(ctx context.Context, card *domain.PersonCard) error {
	_, err := r.db.Exec(ctx, `
		UPDATE person_cards
		SET name = $1, context = $2, is_discoverable = $3, match_status = $4
		WHERE id = $5
	`, card.Name, card.Context, card.IsDiscoverable, card.MatchStatus, card.ID)

	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM person_cards WHERE id = $1`, id)

	return err
}

func (r *PostgresRepository) SetDiscoverable(ctx context.Context, id string, discoverable bool) error {
	_, err := r.db.Exec(ctx, `
		UPDATE person_cards SET is_discoverable = $1 WHERE id = $2
	`, discoverable, id)

	return err
}
