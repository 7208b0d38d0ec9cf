package dto_test

import (
	"testing"

	"afristay/infras/jwt"
	"afristay/internal/domains/auth/model/dto"
	profileModel "afristay/internal/domains/profile/model"
	"afristay/shared/session"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse(t *testing.T) {
	t.Parallel()

	var response dto.LoginResponse
	response.FromTokenPair(&jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	})
	response.FromProfile(profileModel.Profile{
		ID:       "p1",
		Email:    "amina@example.rw",
		FullName: "Amina Uwase",
		Role:     session.RoleOwner,
	})

	assert.Equal(t, "access", response.AccessToken)
	assert.Equal(t, "refresh", response.RefreshToken)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, "p1", response.UserID)
	assert.Equal(t, "owner", response.Role)
	assert.Equal(t, "Amina", response.FirstName)
}

func TestRegisterRequest_ToModel(t *testing.T) {
	t.Parallel()

	req := dto.RegisterRequest{Email: "guest@example.rw", FullName: "Guest"}
	profile := req.ToModel("hashed")

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "hashed", profile.Password)
	assert.Equal(t, session.RoleUser, profile.Role)
	assert.False(t, profile.Banned)
	assert.Equal(t, profile.CreatedAt, profile.ModifiedAt)
}
