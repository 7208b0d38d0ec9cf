package jwt_test

import (
	"context"
	"testing"

	"afristay/config"
	"afristay/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessMin, refreshMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "afristay"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = refreshMin

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(15, 60)

	pair, err := svc.GenerateTokenPair(ctx, "u1", "u1@example.com", "owner")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "owner", claims.Role)
	assert.NotEmpty(t, claims.TokenID)

	refresh, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.TokenID, refresh.TokenID)
}

func TestValidateToken_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(15, 60)

	pair, err := svc.GenerateTokenPair(ctx, "u1", "u1@example.com", "user")
	require.NoError(t, err)

	t.Run("refresh token used as access token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(ctx, pair.AccessToken+"x", jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("signed by another secret", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.JWT.AccessSecret = "other"
		cfg.JWT.RefreshSecret = "other-refresh"
		cfg.JWT.AccessExpireMin = 15
		cfg.JWT.RefreshExpireMin = 60

		foreign, err := jwt.New(cfg).GenerateTokenPair(ctx, "u1", "u1@example.com", "user")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, foreign.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("issued by another service", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.App.Name = "someone-else"
		cfg.JWT.AccessSecret = "access-secret"
		cfg.JWT.RefreshSecret = "refresh-secret"
		cfg.JWT.AccessExpireMin = 15
		cfg.JWT.RefreshExpireMin = 60

		foreign, err := jwt.New(cfg).GenerateTokenPair(ctx, "u1", "u1@example.com", "user")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, foreign.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		expired, err := newService(-1, 60).GenerateTokenPair(ctx, "u1", "u1@example.com", "user")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, expired.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme and padding", header: " bearer   abc ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer ", wantErr: true},
		{name: "basic", header: "Basic abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrMissingToken)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
