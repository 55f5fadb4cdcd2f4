package services

import (
	"context"

	"github.com/spawlov/auth-service/internal/dtos"
	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/repositories"
	"github.com/spawlov/auth-service/internal/utils"
)

// ---------------------------------------------------------------------
// UserService interface
// ---------------------------------------------------------------------

type UserService interface {
	// Register hashes the password and creates the user. Duplicate
	// nickname/email surface as utils.ErrNicknameTaken / utils.ErrEmailTaken.
	Register(ctx context.Context, req dtos.RegisterUserRequest) (*models.User, error)

	// GetByID returns utils.ErrUserNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	GetAll(ctx context.Context) ([]*models.User, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type userService struct {
	userRepo repositories.UserRepository
	hasher   utils.PasswordHasher
}

func NewUserService(userRepo repositories.UserRepository, hasher utils.PasswordHasher) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *userService) Register(ctx context.Context, req dtos.RegisterUserRequest) (*models.User, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Nickname:  req.Nickname,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.Logger.Errorf("User not found: %d", id)
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}
