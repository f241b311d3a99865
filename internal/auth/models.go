package auth

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
)

type DevAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`
}
