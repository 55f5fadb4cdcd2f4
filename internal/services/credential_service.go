package services

import (
	"context"

	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/repositories"
	"github.com/spawlov/auth-service/internal/utils"
)

// ---------------------------------------------------------------------
// CredentialService interface
// ---------------------------------------------------------------------

// CredentialService checks a username/password pair against stored hashed
// credentials.
type CredentialService interface {
	// AuthenticatePassword returns the matching identity.
	// Unknown user and password mismatch both yield
	// utils.ErrInvalidCredentials so callers cannot enumerate accounts;
	// an inactive account yields utils.ErrAccountDisabled.
	AuthenticatePassword(ctx context.Context, username, password string) (*models.User, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type credentialService struct {
	userRepo repositories.UserRepository
	hasher   utils.PasswordHasher
}

func NewCredentialService(userRepo repositories.UserRepository, hasher utils.PasswordHasher) CredentialService {
	return &credentialService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *credentialService) AuthenticatePassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByNickname(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.Logger.Warnf("Invalid login attempt for user: %s", username)
		return nil, utils.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil || !ok {
		utils.Logger.Warnf("Invalid login attempt for user: %s", username)
		return nil, utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		utils.Logger.Warnf("Login attempt for inactive user: %d", user.ID)
		return nil, utils.ErrAccountDisabled
	}

	return user, nil
}
