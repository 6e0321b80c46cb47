package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/user"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
	"github.com/presensia/timetrack-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
}

func NewUserService(db *database.DB, userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepository,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func toProfileResponse(u user.User) user.ProfileResponse {
	return user.ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context) (user.ProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return toProfileResponse(userData), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	var updated user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		current, err := s.UserRepository.GetByID(txCtx, userID)
		if err != nil {
			return err
		}

		if req.Email != current.Email {
			exists, err := s.UserRepository.ExistsByEmail(txCtx, req.Email)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return user.ErrUserEmailExists
			}
		}

		if err := s.UserRepository.UpdateProfile(txCtx, userID, req.Name, req.Email); err != nil {
			return err
		}

		updated, err = s.UserRepository.GetByID(txCtx, userID)
		return err
	})
	if err != nil {
		return user.ProfileResponse{}, err
	}

	return toProfileResponse(updated), nil
}

// GetTargets implements user.UserService.
func (s *UserServiceImpl) GetTargets(ctx context.Context) (user.TargetsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.TargetsResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.TargetsResponse{}, err
	}
	return user.TargetsResponse{
		MonthlyTargetMinutes: userData.MonthlyTargetMinutes,
		YearlyTargetMinutes:  userData.YearlyTargetMinutes,
	}, nil
}

// UpdateTargets implements user.UserService.
func (s *UserServiceImpl) UpdateTargets(ctx context.Context, req user.UpdateTargetsRequest) (user.TargetsResponse, error) {
	if err := req.Validate(); err != nil {
		return user.TargetsResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.TargetsResponse{}, err
	}

	if err := s.UserRepository.UpdateTargets(ctx, userID, req.MonthlyTargetMinutes, req.YearlyTargetMinutes); err != nil {
		return user.TargetsResponse{}, err
	}

	return user.TargetsResponse{
		MonthlyTargetMinutes: req.MonthlyTargetMinutes,
		YearlyTargetMinutes:  req.YearlyTargetMinutes,
	}, nil
}
