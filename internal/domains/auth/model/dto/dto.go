package dto

import (
	"time"

	"campusroom/infras/jwt"
	userModel "campusroom/internal/domains/user/model"
	gModel "campusroom/shared/model"
	"campusroom/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	NationalID string `json:"national_id" validate:"required,numeric,min=5,max=12"`
	Role       string `json:"role"        validate:"required,oneof=student lecturer staff"`
	Password   string `json:"password"    validate:"required,min=8"`
}

func (r *RegisterRequest) ToUserModel(allowed userModel.AllowedUser, hashedPassword string) userModel.User {
	now := timezone.Now()

	var fullName *string
	if allowed.FullName != "" {
		fullName = &allowed.FullName
	}

	id := uuid.NewString()

	return userModel.User{
		ID:         id,
		NationalID: r.NationalID,
		Role:       r.Role,
		FullName:   fullName,
		Password:   hashedPassword,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type LoginRequest struct {
	NationalID string `json:"national_id" validate:"required,numeric"`
	Role       string `json:"role"        validate:"required,oneof=student lecturer staff"`
	Password   string `json:"password"    validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// Tokens is the credential part shared by login and refresh responses.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *Tokens) FromTokenPair(tokenPair *jwt.TokenPair) {
	*t = Tokens{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}
}

type LoginResponse struct {
	Tokens
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	Tokens
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
