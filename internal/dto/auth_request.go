package dto

import (
	"regexp"

	"github.com/hyeonKii/SocialService/internal/model"
)

// Mirrors the client-side rule: user@host with a dotted domain.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// Validate applies the submission gate; errors here are user-correctable
// and computed before any external call.
func (r SignUpRequest) Validate() error {
	if !emailRegex.MatchString(r.Email) {
		return ErrInvalidEmail
	}
	if len(r.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if r.Password != r.PasswordConfirm {
		return ErrPasswordMismatch
	}
	return nil
}

type ProviderSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	// PhotoDataURL carries a new avatar as a data URL; an empty string
	// clears the avatar.
	PhotoDataURL *string `json:"photo_data_url"`
}

type TokenResponse struct {
	AccessToken string            `json:"access_token"`
	User        model.SessionUser `json:"user"`
}
