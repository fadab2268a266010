// Package gateway is the only way the application reaches the hosted data store:
// generic table reads and writes over postgres plus password sessions kept in redis.
package gateway

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=./mocks/gateway_mock.go -package=mocks

import (
	"context"
	"errors"
	"hotelops/config"
	"hotelops/infras/jwt"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/shared/cache"
	"hotelops/shared/dto"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUnknownTable       = errors.New("unknown table")
	ErrInvalidColumn      = errors.New("invalid column name")
	ErrRequiredFilter     = errors.New("update requires a filter")
	ErrEmptyPatch         = errors.New("update requires at least one column")
	ErrNoRowsAffected     = errors.New("no rows matched the filter")
	ErrInvalidDestination = errors.New("destination must be a pointer to a struct or slice")
)

// Session is an authenticated gateway session. UserID is the identity subject that
// operator profiles reference through users.auth_id.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	// RefreshID is the jti of the only refresh token that may rotate this session.
	RefreshID string `json:"refresh_id,omitempty"`
}

// Tables lists the tables the gateway may touch.
type Tables []string

type Gateway interface {
	// Select reads rows of table matching filter into dest, a pointer to a slice or struct.
	Select(ctx context.Context, table string, filter dto.FilterGroup, params dto.QueryParams, dest any) error
	// Insert writes one struct or a slice of structs and scans the stored rows into dest when non-nil.
	Insert(ctx context.Context, table string, records any, dest any) error
	// Update applies patch to every row matching filter.
	Update(ctx context.Context, table string, patch map[string]any, filter dto.FilterGroup) error

	// GetSession resolves an access token. A missing, expired or revoked session is (nil, nil).
	GetSession(ctx context.Context, accessToken string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
}

type gatewayImpl struct {
	db     *postgres.Connection
	cache  cache.RedisCache
	jwt    jwt.JWT
	otel   otel.Otel
	cfg    *config.Config
	tables map[string]bool
}

func New(db *postgres.Connection, redisCache cache.RedisCache, jwtService jwt.JWT, ot otel.Otel, cfg *config.Config, tables Tables) Gateway {
	allowed := make(map[string]bool, len(tables))
	for _, table := range tables {
		allowed[table] = true
	}

	return &gatewayImpl{
		db:     db,
		cache:  redisCache,
		jwt:    jwtService,
		otel:   ot,
		cfg:    cfg,
		tables: allowed,
	}
}
