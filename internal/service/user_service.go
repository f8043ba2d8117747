package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vape-shop/internal/domain"
	"vape-shop/internal/repository"
)

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, email, role string) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates an account for the email. The role defaults to "user";
// each email registers exactly once.
func (s *userService) Register(ctx context.Context, email, role string) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrUserAlreadyExists
	}

	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	return user, nil
}
