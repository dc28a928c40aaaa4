package service

import (
	"context"
	"fmt"
	"sync"

	"HerShield/internal/model/dto"
	"HerShield/internal/repository"
	pkgerrors "HerShield/pkg/errors"
)

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = &UserService{
			users: repository.NewUserRepository(),
		}
	})

	return userService
}

type UserService struct {
	users *repository.UserRepository
}

// Profile 返回当前用户资料
func (s *UserService) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return nil, pkgerrors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		PublicID:     user.PublicID,
		Username:     user.Username,
		Email:        user.Email,
		Active:       user.Active,
		ContactCount: len(user.EmergencyContacts),
	}, nil
}
