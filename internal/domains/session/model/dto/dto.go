package dto

import (
	"hotelops/infras/gateway"
	userDto "hotelops/internal/domains/user/model/dto"
	userModel "hotelops/internal/domains/user/model"
	"hotelops/shared/constant"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

func (r *TokenResponse) FromSession(session gateway.Session) {
	r.AccessToken = session.AccessToken
	r.RefreshToken = session.RefreshToken
	r.ExpiresAt = session.ExpiresAt.Format(constant.DateFormat)
}

// SessionResponse describes the signed-in operator. Tokens are only sent on login.
type SessionResponse struct {
	State         string                `json:"state"`
	Authenticated bool                  `json:"authenticated"`
	User          *userDto.UserResponse `json:"user,omitempty"`
	*TokenResponse
}

func (r *SessionResponse) FromModel(state string, session *gateway.Session, user *userModel.User, withTokens bool) {
	r.State = state
	r.Authenticated = session != nil && user != nil

	if user != nil {
		r.User = &userDto.UserResponse{}
		r.User.FromModel(*user)
	}

	if withTokens && session != nil {
		r.TokenResponse = &TokenResponse{}
		r.TokenResponse.FromSession(*session)
	}
}
