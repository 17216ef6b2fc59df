package services

import (
	"context"
	"errors"
	"fmt"

	"collabspace/internal/models"
	"collabspace/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// RegisterUser hashes the password and stores a new user. The existence
// check is a fast path; the unique index on email settles concurrent races.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("password must be at most 72 bytes: %w", ErrValidation)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser verifies the credentials and returns the matching user.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveIdentity maps an identity header value to its user.
func (s *AuthService) ResolveIdentity(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return user, nil
}
