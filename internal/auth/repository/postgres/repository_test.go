package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superadriano/hana-backend/internal/auth/domain"
	"github.com/superadriano/hana-backend/internal/auth/repository/postgres"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

func newMockRepo(t *testing.T) (*postgres.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return postgres.NewPostgresRepository(mock), mock
}

func TestGetUserByPhone_Found(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "phone_number", "full_name", "hair_color", "is_onboarded", "created_at", "updated_at",
	}).AddRow("user-1", "+15551234567", "Jamie", "brown", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, phone_number, full_name, hair_color, is_onboarded, created_at, updated_at")).
		WithArgs("+15551234567").
		WillReturnRows(rows)

	user, err := repo.GetUserByPhone(context.Background(), "+15551234567")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Jamie", user.FullName)
	assert.True(t, user.IsOnboarded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByPhone_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, phone_number, full_name, hair_color, is_onboarded, created_at, updated_at")).
		WithArgs("+15550000000").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "phone_number", "full_name", "hair_color", "is_onboarded", "created_at", "updated_at",
		}))

	user, err := repo.GetUserByPhone(context.Background(), "+15550000000")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	user := &domain.User{
		ID:          "user-1",
		PhoneNumber: "+15551234567",
		FullName:    "New User",
		HairColor:   "unknown",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.PhoneNumber, user.FullName, user.HairColor, user.IsOnboarded,
			user.CreatedAt, user.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.CreateUser(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserProfile(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("Jamie", "brown", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdateUserProfile(context.Background(), "user-1", "Jamie", "brown"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveVerificationCode_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM verification_codes")).
		WithArgs("+15551234567", "000000").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "phone_number", "code", "expires_at", "used", "attempts", "created_at",
		}))

	vc, err := repo.GetActiveVerificationCode(context.Background(), "+15551234567", "000000")

	assert.NoError(t, err)
	assert.Nil(t, vc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeVerificationCode(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantConsumed bool
	}{
		{name: "first consumer wins", rowsAffected: 1, wantConsumed: true},
		{name: "already consumed", rowsAffected: 0, wantConsumed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE verification_codes SET used = TRUE WHERE id = $1 AND used = FALSE")).
				WithArgs("code-1").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rowsAffected))

			consumed, err := repo.ConsumeVerificationCode(context.Background(), "code-1")

			require.NoError(t, err)
			assert.Equal(t, tt.wantConsumed, consumed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetActiveRefreshToken_Found(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "token", "expires_at", "revoked", "device_info", "created_at",
		"u_id", "phone_number", "full_name", "hair_color", "is_onboarded", "u_created_at", "u_updated_at",
	}).AddRow("rt-1", "user-1", "opaque", now.Add(time.Hour), false, "ios", now,
		"user-1", "+15551234567", "Jamie", "brown", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens rt")).
		WithArgs("opaque").
		WillReturnRows(rows)

	rt, user, err := repo.GetActiveRefreshToken(context.Background(), "opaque")

	require.NoError(t, err)
	require.NotNil(t, rt)
	require.NotNil(t, user)
	assert.Equal(t, "rt-1", rt.ID)
	assert.Equal(t, "user-1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateRefreshToken_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rt := &domain.RefreshToken{
		ID: "rt-new", UserID: "user-1", Token: "new-opaque",
		ExpiresAt: now.Add(7 * 24 * time.Hour), DeviceInfo: "ios", CreatedAt: now,
	}
	session := &domain.Session{
		ID: "sess-1", UserID: "user-1", AccessTokenHash: "hash",
		ExpiresAt: now.Add(time.Hour), DeviceInfo: "ios", IPAddress: "127.0.0.1", CreatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1 AND revoked = FALSE")).
		WithArgs("rt-old").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WithArgs(rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.Revoked, rt.DeviceInfo, rt.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_sessions")).
		WithArgs(session.ID, session.UserID, session.AccessTokenHash, session.ExpiresAt,
			session.DeviceInfo, session.IPAddress, session.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.RotateRefreshToken(context.Background(), "rt-old", rt, session)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateRefreshToken_LostRace(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1 AND revoked = FALSE")).
		WithArgs("rt-old").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.RotateRefreshToken(context.Background(), "rt-old",
		&domain.RefreshToken{}, &domain.Session{})

	assert.ErrorIs(t, err, autherror.ErrInvalidRefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeRefreshToken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1")).
		WithArgs("opaque").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.RevokeRefreshToken(context.Background(), "opaque"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestActiveSession_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_sessions")).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "access_token_hash", "expires_at", "device_info", "ip_address", "created_at",
		}))

	session, err := repo.GetLatestActiveSession(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_sessions")).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM verification_codes")).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	res, err := repo.DeleteExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.RefreshTokens)
	assert.Equal(t, int64(2), res.Sessions)
	assert.Equal(t, int64(7), res.VerificationCodes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired_FirstDeleteFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WillReturnError(errors.New("deadlock detected"))

	_, err := repo.DeleteExpired(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
