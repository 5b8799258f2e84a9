package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	userRepo "autobook/database/repository/user"
	"autobook/models"
	"autobook/utils"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so
// login responses never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService manages accounts and auth tokens.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

const tokenTTL = 72 * time.Hour

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if req.Role != models.RoleCustomer && req.Role != models.RoleDetailer {
		return nil, "", fmt.Errorf("unknown role %q", req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	created, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(created.ID, created.Email, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return created, token, nil
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return u, token, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.Repo.SetFCMToken(ctx, userID, token)
}
