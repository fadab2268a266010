package jwt_test

import (
	"hotelops/config"
	"hotelops/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotelops"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("auth-1", "frontdesk@hotel.test", "")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.SessionID)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "auth-1", claims.UserID)
	assert.Equal(t, "frontdesk@hotel.test", claims.Email)
	assert.Equal(t, pair.SessionID, claims.SessionID)

	refresh, err := svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.SessionID, refresh.SessionID)
}

func TestValidateTokenErrors(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("auth-1", "frontdesk@hotel.test", "session-1")
	require.NoError(t, err)

	expiredCfg := newConfig()
	expiredCfg.JWT.AccessExpireMin = -1
	expired, err := jwt.New(expiredCfg).GenerateTokenPair("auth-1", "frontdesk@hotel.test", "session-1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		expected  error
	}{
		{name: "garbage", token: "not-a-jwt", tokenType: jwt.AccessToken, expected: jwt.ErrInvalidToken},
		{name: "refresh used as access", token: pair.RefreshToken, tokenType: jwt.AccessToken, expected: jwt.ErrInvalidToken},
		{name: "expired access", token: expired.AccessToken, tokenType: jwt.AccessToken, expected: jwt.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token, tt.tokenType)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRefreshTokensKeepsSession(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("auth-1", "frontdesk@hotel.test", "session-7")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "session-7", refreshed.SessionID)
	assert.Equal(t, pair.RefreshID, refreshed.RotatedFrom)
	assert.NotEqual(t, pair.RefreshID, refreshed.RefreshID)

	claims, err := svc.ValidateToken(refreshed.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, refreshed.RefreshID, claims.ID)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		err      error
	}{
		{name: "bearer", header: "Bearer abc.def", expected: "abc.def"},
		{name: "missing", header: "", err: jwt.ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc", err: jwt.ErrTokenFormat},
		{name: "empty token", header: "Bearer ", err: jwt.ErrTokenFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
