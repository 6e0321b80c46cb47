package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/presensia/timetrack-backend-go/internal/config"
	"github.com/presensia/timetrack-backend-go/internal/domain/auth"
	"github.com/presensia/timetrack-backend-go/internal/domain/user"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
	"github.com/presensia/timetrack-backend-go/internal/pkg/jwt"
	"github.com/presensia/timetrack-backend-go/internal/pkg/oauth"
	"github.com/presensia/timetrack-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	googleService oauth.GoogleService
	targets       config.TargetConfig
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, googleService oauth.GoogleService, targets config.TargetConfig) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		googleService:  googleService,
		targets:        targets,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) issueSession(userData user.User) (auth.SessionResponse, error) {
	token, expiresAt, err := a.Service.GenerateSessionToken(userData.ID, userData.Email)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to create session token: %w", err)
	}
	return auth.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    userData.ID,
		Name:      userData.Name,
		Email:     userData.Email,
	}, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		exists, err := a.UserRepository.ExistsByEmail(txCtx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.ErrUserEmailExists
		}

		created, err = a.UserRepository.Create(txCtx, user.User{
			Name:                 req.Name,
			Email:                req.Email,
			PasswordHash:         &hashed,
			MonthlyTargetMinutes: a.targets.DefaultMonthlyMinutes,
			YearlyTargetMinutes:  a.targets.DefaultYearlyMinutes,
		})
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}

	return a.issueSession(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.HasPassword() {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueSession(userData)
}

// LoginWithGoogle implements auth.AuthService. It exchanges the OAuth2 code,
// then signs in the matching account, linking or creating one as needed.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.SessionResponse, error) {
	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.SessionResponse{}, auth.ErrEmailNotVerified
	}

	var userData user.User
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		existing, err := a.UserRepository.GetByEmail(txCtx, info.Email)
		if err == nil {
			if existing.GoogleID == nil || *existing.GoogleID == "" {
				existing, err = a.UserRepository.LinkGoogleAccount(txCtx, info.GoogleID, info.Email)
				if err != nil {
					return fmt.Errorf("failed to link google account: %w", err)
				}
			}
			userData = existing
			return nil
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to get user by email: %w", err)
		}

		name := info.Name
		if name == "" {
			name = info.Email
		}
		userData, err = a.UserRepository.Create(txCtx, user.User{
			Name:                 name,
			Email:                info.Email,
			GoogleID:             &info.GoogleID,
			MonthlyTargetMinutes: a.targets.DefaultMonthlyMinutes,
			YearlyTargetMinutes:  a.targets.DefaultYearlyMinutes,
		})
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}

	return a.issueSession(userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}
