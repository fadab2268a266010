package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelops/infras/jwt"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/password"
	"hotelops/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheSession = "session"

	queryAuthUserByEmail = `SELECT id, email, password_hash FROM auth_users WHERE LOWER(email) = LOWER($1)`
	queryTouchAuthUser   = `UPDATE auth_users SET last_sign_in_at = $1 WHERE id = $2`
)

type authUser struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

func sessionKey(id string) string {
	return shared.BuildCacheKey(cacheSession, id)
}

func (g *gatewayImpl) sessionTTLSeconds() int {
	return g.cfg.Session.TTLMinutes * 60
}

func (g *gatewayImpl) SignIn(ctx context.Context, email, pass string) (res *Session, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".SignIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var user authUser

	err = g.db.Read.GetContext(ctx, &user, queryAuthUserByEmail, strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to look up auth user")

		return nil, fmt.Errorf("failed to look up auth user: %w", err)
	}

	if err = password.Verify(pass, user.PasswordHash); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	pair, err := g.jwt.GenerateTokenPair(user.ID, user.Email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to issue session tokens: %w", err)
	}

	res = &Session{
		ID:           pair.SessionID,
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		RefreshID:    pair.RefreshID,
	}

	if err = g.cache.Save(ctx, sessionKey(res.ID), res, g.sessionTTLSeconds()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if _, err := g.db.Write.ExecContext(ctx, queryTouchAuthUser, timezone.Now(), user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record sign in time")
	}

	return res, nil
}

func (g *gatewayImpl) GetSession(ctx context.Context, accessToken string) (res *Session, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".GetSession")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if accessToken == "" {
		return nil, nil
	}

	claims, err := g.jwt.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		log.Debug().Err(err).Msg("access token rejected")

		return nil, nil
	}

	var stored Session

	err = g.cache.Get(ctx, sessionKey(claims.SessionID), &stored)
	if errors.Is(err, cache.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if stored.UserID != claims.UserID {
		return nil, nil
	}

	stored.AccessToken = accessToken

	return &stored, nil
}

func (g *gatewayImpl) SignOut(ctx context.Context, session *Session) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".SignOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if session == nil || session.ID == "" {
		return nil
	}

	if err = g.cache.Delete(ctx, sessionKey(session.ID)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

// RefreshSession rotates the token pair of a live session. Each refresh token rotates
// once: the session only accepts the one issued last.
func (g *gatewayImpl) RefreshSession(ctx context.Context, refreshToken string) (res *Session, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".RefreshSession")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	pair, err := g.jwt.RefreshTokens(refreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")

		return nil, ErrInvalidCredentials
	}

	var stored Session

	err = g.cache.Get(ctx, sessionKey(pair.SessionID), &stored)
	if errors.Is(err, cache.Nil) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if stored.RefreshID != pair.RotatedFrom {
		log.Warn().Str("session_id", stored.ID).Msg("superseded refresh token presented")

		return nil, ErrInvalidCredentials
	}

	stored.AccessToken = pair.AccessToken
	stored.RefreshToken = pair.RefreshToken
	stored.ExpiresAt = pair.ExpiresAt
	stored.RefreshID = pair.RefreshID

	if err = g.cache.Save(ctx, sessionKey(stored.ID), stored, g.sessionTTLSeconds()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &stored, nil
}
