package jwt_test

import (
	"testing"

	"campusroom/config"
	"campusroom/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(name string) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = name
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestTokenPairRoundTrip(t *testing.T) {
	service := newService("campusroom")

	pair, err := service.GenerateTokenPair("u1", "123456782", "student")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := service.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, claims.ID, claims.TokenID)

	_, err = service.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = newService("other-issuer").ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	refreshed, err := service.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, refreshed.AccessToken)

	_, err = service.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer abc.def", want: "abc.def"},
		{header: "Basic dXNlcg==", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "abc.def", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrMissingBearer)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
