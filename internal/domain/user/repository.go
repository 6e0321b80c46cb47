package user

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdateProfile(ctx context.Context, id string, name string, email string) error
	UpdateTargets(ctx context.Context, id string, monthlyTargetMinutes int, yearlyTargetMinutes int) error
}
