package user

import "context"

// UserService exposes profile and target settings for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
	GetTargets(ctx context.Context) (TargetsResponse, error)
	UpdateTargets(ctx context.Context, req UpdateTargetsRequest) (TargetsResponse, error)
}
