package gateway

import (
	"context"
	"errors"
	"hotelops/config"
	"hotelops/infras/jwt"
	jwtmocks "hotelops/infras/jwt/mocks"
	otelmocks "hotelops/infras/otel/mocks"
	"hotelops/infras/postgres"
	"hotelops/shared/cache"
	cachemocks "hotelops/shared/cache/mocks"
	"hotelops/shared/dto"
	"hotelops/shared/password"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	gateway Gateway
	sql     sqlmock.Sqlmock
	cache   *cachemocks.MockRedisCache
	jwt     *jwtmocks.MockJWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Session.TTLMinutes = 30

	f := &fixture{
		sql:   mock,
		cache: cachemocks.NewMockRedisCache(ctrl),
		jwt:   jwtmocks.NewMockJWT(ctrl),
	}

	f.gateway = New(
		&postgres.Connection{Read: sqlxDB, Write: sqlxDB},
		f.cache,
		f.jwt,
		otelmocks.NewOtel(),
		cfg,
		Tables{"rooms", "bookings"},
	)

	return f
}

type room struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number"`
}

func TestSelect(t *testing.T) {
	f := newFixture(t)

	f.sql.ExpectPrepare(regexp.QuoteMeta("SELECT * FROM rooms WHERE (property_id = $1) ORDER BY room_number ASC")).
		ExpectQuery().
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number"}).AddRow("r1", "101").AddRow("r2", "102"))

	var rooms []room
	err := f.gateway.Select(context.Background(), "rooms", dto.And(dto.Eq("property_id", "p1")), dto.OrderBy("room_number", "asc"), &rooms)

	require.NoError(t, err)
	assert.Equal(t, []room{{ID: "r1", RoomNumber: "101"}, {ID: "r2", RoomNumber: "102"}}, rooms)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestSelectRejectsUnknownTable(t *testing.T) {
	f := newFixture(t)

	var rows []room
	err := f.gateway.Select(context.Background(), "auth_users", dto.FilterGroup{}, dto.QueryParams{}, &rows)

	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestSelectRejectsScalarDestination(t *testing.T) {
	f := newFixture(t)

	f.sql.ExpectPrepare(regexp.QuoteMeta("SELECT * FROM rooms"))

	var count int
	err := f.gateway.Select(context.Background(), "rooms", dto.FilterGroup{}, dto.QueryParams{}, &count)

	assert.ErrorIs(t, err, ErrInvalidDestination)
}

func TestSelectPropagatesDatabaseError(t *testing.T) {
	f := newFixture(t)

	f.sql.ExpectPrepare(regexp.QuoteMeta("SELECT * FROM rooms")).
		ExpectQuery().
		WillReturnError(errors.New("connection reset"))

	var rows []room
	err := f.gateway.Select(context.Background(), "rooms", dto.FilterGroup{}, dto.QueryParams{}, &rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInsert(t *testing.T) {
	f := newFixture(t)

	f.sql.ExpectQuery(regexp.QuoteMeta("INSERT INTO rooms (id, room_number) VALUES ($1, $2) RETURNING *")).
		WithArgs("r1", "101").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number"}).AddRow("r1", "101"))

	var stored room
	err := f.gateway.Insert(context.Background(), "rooms", room{ID: "r1", RoomNumber: "101"}, &stored)

	require.NoError(t, err)
	assert.Equal(t, room{ID: "r1", RoomNumber: "101"}, stored)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestInsertEmptySliceIsNoop(t *testing.T) {
	f := newFixture(t)

	err := f.gateway.Insert(context.Background(), "rooms", []room{}, nil)

	require.NoError(t, err)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		err      error
	}{
		{name: "patched", affected: 1},
		{name: "no matching row", affected: 0, err: ErrNoRowsAffected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.sql.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1 WHERE (id = $2)")).
				WithArgs("checked_in", "b1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := f.gateway.Update(context.Background(), "bookings", map[string]any{"status": "checked_in"}, dto.And(dto.Eq("id", "b1")))

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, f.sql.ExpectationsWereMet())
		})
	}
}

func TestSignIn(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	authRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "email", "password_hash"}).AddRow("u1", "ops@hotel.test", hash)
	}

	t.Run("valid credentials", func(t *testing.T) {
		f := newFixture(t)
		expiresAt := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

		f.sql.ExpectQuery(regexp.QuoteMeta(queryAuthUserByEmail)).WithArgs("ops@hotel.test").WillReturnRows(authRows())
		f.jwt.EXPECT().GenerateTokenPair("u1", "ops@hotel.test", "").Return(&jwt.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    expiresAt,
			SessionID:    "s1",
			RefreshID:    "rt-1",
		}, nil)
		f.cache.EXPECT().Save(gomock.Any(), "session:s1", gomock.Any(), 30*60).Return(nil)
		f.sql.ExpectExec(regexp.QuoteMeta(queryTouchAuthUser)).WithArgs(sqlmock.AnyArg(), "u1").WillReturnResult(sqlmock.NewResult(0, 1))

		session, err := f.gateway.SignIn(context.Background(), " ops@hotel.test ", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, &Session{
			ID:           "s1",
			UserID:       "u1",
			Email:        "ops@hotel.test",
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    expiresAt,
			RefreshID:    "rt-1",
		}, session)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)

		f.sql.ExpectQuery(regexp.QuoteMeta(queryAuthUserByEmail)).WithArgs("ops@hotel.test").WillReturnRows(authRows())

		session, err := f.gateway.SignIn(context.Background(), "ops@hotel.test", "wrong")

		assert.Nil(t, session)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)

		f.sql.ExpectQuery(regexp.QuoteMeta(queryAuthUserByEmail)).
			WithArgs("nobody@hotel.test").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}))

		session, err := f.gateway.SignIn(context.Background(), "nobody@hotel.test", "s3cret-pass")

		assert.Nil(t, session)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("database down", func(t *testing.T) {
		f := newFixture(t)

		f.sql.ExpectQuery(regexp.QuoteMeta(queryAuthUserByEmail)).WillReturnError(errors.New("dial tcp: refused"))

		session, err := f.gateway.SignIn(context.Background(), "ops@hotel.test", "s3cret-pass")

		assert.Nil(t, session)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetSession(t *testing.T) {
	claims := &jwt.Claims{UserID: "u1", SessionID: "s1", Type: jwt.AccessToken}

	t.Run("active", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("access", jwt.AccessToken).Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*Session) = Session{ID: "s1", UserID: "u1", Email: "ops@hotel.test"}

				return nil
			})

		session, err := f.gateway.GetSession(context.Background(), "access")

		require.NoError(t, err)
		assert.Equal(t, &Session{ID: "s1", UserID: "u1", Email: "ops@hotel.test", AccessToken: "access"}, session)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		session, err := f.gateway.GetSession(context.Background(), "old")

		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("revoked", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("access", jwt.AccessToken).Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).Return(cache.Nil)

		session, err := f.gateway.GetSession(context.Background(), "access")

		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("cache failure", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("access", jwt.AccessToken).Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).Return(errors.New("redis down"))

		session, err := f.gateway.GetSession(context.Background(), "access")

		assert.Error(t, err)
		assert.Nil(t, session)
	})

	t.Run("empty token", func(t *testing.T) {
		f := newFixture(t)

		session, err := f.gateway.GetSession(context.Background(), "")

		assert.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Delete(gomock.Any(), "session:s1").Return(nil)

	require.NoError(t, f.gateway.SignOut(context.Background(), &Session{ID: "s1"}))
	require.NoError(t, f.gateway.SignOut(context.Background(), nil))
}

func TestRefreshSession(t *testing.T) {
	expiresAt := time.Date(2025, 1, 15, 13, 0, 0, 0, time.UTC)
	rotated := &jwt.TokenPair{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		ExpiresAt:    expiresAt,
		SessionID:    "s1",
		RefreshID:    "rt-2",
		RotatedFrom:  "rt-1",
	}

	stored := func(refreshID string) func(context.Context, string, any) error {
		return func(_ context.Context, _ string, value any) error {
			*value.(*Session) = Session{ID: "s1", UserID: "u1", RefreshID: refreshID}

			return nil
		}
	}

	t.Run("rotates the current refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens("refresh").Return(rotated, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).DoAndReturn(stored("rt-1"))
		f.cache.EXPECT().Save(gomock.Any(), "session:s1", gomock.Any(), 30*60).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				assert.Equal(t, "rt-2", value.(Session).RefreshID)

				return nil
			})

		session, err := f.gateway.RefreshSession(context.Background(), "refresh")

		require.NoError(t, err)
		assert.Equal(t, "access-2", session.AccessToken)
		assert.Equal(t, "refresh-2", session.RefreshToken)
		assert.Equal(t, expiresAt, session.ExpiresAt)
		assert.Equal(t, "rt-2", session.RefreshID)
	})

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "invalid or expired token",
			setup: func(f *fixture) {
				f.jwt.EXPECT().RefreshTokens("refresh").Return(nil, jwt.ErrExpiredToken)
			},
		},
		{
			name: "unknown session",
			setup: func(f *fixture) {
				f.jwt.EXPECT().RefreshTokens("refresh").Return(rotated, nil)
				f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).Return(cache.Nil)
			},
		},
		{
			name: "superseded refresh token",
			setup: func(f *fixture) {
				f.jwt.EXPECT().RefreshTokens("refresh").Return(rotated, nil)
				f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).DoAndReturn(stored("rt-9"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			session, err := f.gateway.RefreshSession(context.Background(), "refresh")

			assert.Nil(t, session)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	t.Run("cache failure", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens("refresh").Return(rotated, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:s1", gomock.Any()).Return(errors.New("redis down"))

		session, err := f.gateway.RefreshSession(context.Background(), "refresh")

		assert.Nil(t, session)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}
