package auth

import "context"

// AuthService issues and revokes session tokens.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)
	LoginWithGoogle(ctx context.Context, code string) (SessionResponse, error)
	Logout(ctx context.Context, token string) error
}
