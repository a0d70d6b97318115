package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/superadriano/hana-backend/internal/auth/domain"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `
		SELECT id, phone_number, full_name, hair_color, is_onboarded, created_at, updated_at
		FROM users
		WHERE phone_number = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, phone)

	var user domain.User
	err := row.Scan(&user.ID, &user.PhoneNumber, &user.FullName, &user.HairColor,
		&user.IsOnboarded, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, phone_number, full_name, hair_color, is_onboarded, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.PhoneNumber, &user.FullName, &user.HairColor,
		&user.IsOnboarded, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, phone_number, full_name, hair_color, is_onboarded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.PhoneNumber, user.FullName, user.HairColor, user.IsOnboarded,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) UpdateUserProfile(ctx context.Context, id, fullName, hairColor string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET full_name = $1, hair_color = $2, is_onboarded = TRUE, updated_at = NOW()
		WHERE id = $3
	`, fullName, hairColor, id)

	return err
}

func (r *PostgresRepository) CreateVerificationCode(ctx context.Context, vc *domain.VerificationCode) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verification_codes (id, phone_number, code, expires_at, used, attempts, created_at)
		VALUES ($1, $2, $3, $4, FALSE, 0, $5)
	`, vc.ID, vc.PhoneNumber, vc.Code, vc.ExpiresAt, vc.CreatedAt)

	return err
}

func (r *PostgresRepository) GetActiveVerificationCode(ctx context.Context, phone, code string) (*domain.VerificationCode, error) {
	query := `
		SELECT id, phone_number, code, expires_at, used, attempts, created_at
		FROM verification_codes
		WHERE phone_number = $1 AND code = $2 AND used = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, phone, code)

	var vc domain.VerificationCode
	err := row.Scan(&vc.ID, &vc.PhoneNumber, &vc.Code, &vc.ExpiresAt, &vc.Used,
		&vc.Attempts, &vc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return &vc, nil
}

// ConsumeVerificationCode marks the row used. The conditional update is the
// serialization point: of two concurrent consumers, exactly one sees a row
// affected.
func (r *PostgresRepository) ConsumeVerificationCode(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE verification_codes SET used = TRUE WHERE id = $1 AND used = FALSE
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to consume verification code: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) IncrementCodeAttempts(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE id = (
			SELECT id FROM verification_codes
			WHERE phone_number = $1 AND used = FALSE AND expires_at > NOW()
			ORDER BY created_at DESC
			LIMIT 1
		)
	`, phone)

	return err
}

func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked, device_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.Revoked, rt.DeviceInfo, rt.CreatedAt)

	return err
}

func (r *PostgresRepository) GetActiveRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, *domain.User, error) {
	query := `
		SELECT rt.id, rt.user_id, rt.token, rt.expires_at, rt.revoked, rt.device_info, rt.created_at,
		       u.id, u.phone_number, u.full_name, u.hair_color, u.is_onboarded, u.created_at, u.updated_at
		FROM refresh_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1 AND rt.revoked = FALSE AND rt.expires_at > NOW()
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, token)

	var rt domain.RefreshToken
	var user domain.User
	err := row.Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.Revoked,
		&rt.DeviceInfo, &rt.CreatedAt,
		&user.ID, &user.PhoneNumber, &user.FullName, &user.HairColor,
		&user.IsOnboarded, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, &user, nil
}

// RotateRefreshToken revokes the old token and records its replacement plus
// the new session in one transaction. Losing the revoke race means a
// concurrent refresh already rotated this token.
func (r *PostgresRepository) RotateRefreshToken(ctx context.Context, oldID string, rt *domain.RefreshToken, session *domain.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1 AND revoked = FALSE
	`, oldID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrInvalidRefreshToken
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked, device_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.Revoked, rt.DeviceInfo, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store rotated refresh token: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_sessions (id, user_id, access_token_hash, expires_at, device_info, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, session.ID, session.UserID, session.AccessTokenHash, session.ExpiresAt,
		session.DeviceInfo, session.IPAddress, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1
	`, token)

	return err
}

func (r *PostgresRepository) StoreSession(ctx context.Context, session *domain.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_sessions (id, user_id, access_token_hash, expires_at, device_info, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, session.ID, session.UserID, session.AccessTokenHash, session.ExpiresAt,
		session.DeviceInfo, session.IPAddress, session.CreatedAt)

	return err
}

func (r *PostgresRepository) GetLatestActiveSession(ctx context.Context, userID string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, access_token_hash, expires_at, device_info, ip_address, created_at
		FROM user_sessions
		WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, userID)

	var s domain.Session
	err := row.Scan(&s.ID, &s.UserID, &s.AccessTokenHash, &s.ExpiresAt,
		&s.DeviceInfo, &s.IPAddress, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) (domain.SweepResult, error) {
	var res domain.SweepResult

	tag, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens WHERE expires_at < NOW() OR revoked = TRUE
	`)
	if err != nil {
		return res, fmt.Errorf("failed to sweep refresh tokens: %w", err)
	}
	res.RefreshTokens = tag.RowsAffected()

	tag, err = r.db.Exec(ctx, `
		DELETE FROM user_sessions WHERE expires_at < NOW()
	`)
	if err != nil {
		return res, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	res.Sessions = tag.RowsAffected()

	tag, err = r.db.Exec(ctx, `
		DELETE FROM verification_codes WHERE expires_at < NOW()
	`)
	if err != nil {
		return res, fmt.Errorf("failed to sweep verification codes: %w", err)
	}
	res.VerificationCodes = tag.RowsAffected()

	return res, nil
}
