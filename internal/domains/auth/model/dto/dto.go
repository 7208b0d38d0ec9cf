package dto

import (
	"time"

	"afristay/infras/jwt"
	profileModel "afristay/internal/domains/profile/model"
	"afristay/shared/constant"
	gModel "afristay/shared/model"
	"afristay/shared/session"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string  `json:"email"           validate:"required,email"`
	Password string  `json:"password"        validate:"required,min=8"`
	FullName string  `json:"full_name"       validate:"required,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

func (r *RegisterRequest) ToModel(hashedPassword string) profileModel.Profile {
	now := timezone.Now()

	return profileModel.Profile{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		FullName: r.FullName,
		Phone:    r.Phone,
		Role:     session.RoleUser,
		Metadata: gModel.NewMetadata(constant.ContextGuest, now),
	}
}

type LoginRequest struct {
	Email            string   `json:"email"                       validate:"required,email"`
	Password         string   `json:"password"                    validate:"required"`
	PendingFavorites []string `json:"pending_favorites,omitempty" validate:"max=200,dive,uuid"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// LoginResponse carries the role and first name so clients can route without another round trip.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	FirstName    string `json:"first_name"`
	// Favorites is the merged favorite set when pending favorites were sent.
	Favorites    []string `json:"favorites,omitempty"`
	ClearPending bool     `json:"clear_pending,omitempty"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

func (l *LoginResponse) FromProfile(profile profileModel.Profile) {
	l.UserID = profile.ID
	l.Role = profile.Role.String()
	l.FirstName = profile.FirstName()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

type UpdateEmailRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateEmailModel struct {
	Email string `db:"email"`
}
