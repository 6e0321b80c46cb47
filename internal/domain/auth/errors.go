package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or missing session token")
	ErrTokenRevoked       = errors.New("session token revoked")
	ErrEmailNotVerified   = errors.New("google account email not verified")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
)
