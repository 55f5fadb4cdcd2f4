package services

import (
	"context"

	"github.com/spawlov/auth-service/internal/dtos"
	"github.com/spawlov/auth-service/internal/models"
)

// Revocation reasons recorded on logout.
const (
	ReasonLogout    = "User logout"
	ReasonLogoutAll = "User logout (all sessions)"
)

// Logout result details returned to the client.
const (
	LogoutDetails    = "Logged out successfully"
	LogoutAllDetails = "All sessions terminated successfully"
)

// ---------------------------------------------------------------------
// AuthService interface
// ---------------------------------------------------------------------

// AuthService orchestrates the credential verifier, token issuer, session
// guard and revocation manager behind the /auth endpoints.
type AuthService interface {
	// Login verifies the credentials and mints a fresh access+refresh pair.
	Login(ctx context.Context, username, password string, rc models.RequestContext) (*dtos.TokenInfo, error)

	// Refresh authenticates a refresh token and mints a new access token
	// only; the presented refresh token stays valid.
	Refresh(ctx context.Context, refreshToken string, rc models.RequestContext) (*dtos.TokenInfo, error)

	// Logout authenticates an access token, then revokes either that token
	// or every token of its user. Returns the human-readable details line.
	Logout(ctx context.Context, accessToken string, logoutAll bool) (string, error)

	// Me authenticates an access token and returns its identity.
	Me(ctx context.Context, accessToken string) (*models.User, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type authService struct {
	credentials CredentialService
	issuer      TokenIssuer
	guard       SessionGuard
	revoker     RevocationService
	users       UserService
}

func NewAuthService(
	credentials CredentialService,
	issuer TokenIssuer,
	guard SessionGuard,
	revoker RevocationService,
	users UserService,
) AuthService {
	return &authService{
		credentials: credentials,
		issuer:      issuer,
		guard:       guard,
		revoker:     revoker,
		users:       users,
	}
}

func (s *authService) Login(ctx context.Context, username, password string, rc models.RequestContext) (*dtos.TokenInfo, error) {
	user, err := s.credentials.AuthenticatePassword(ctx, username, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.IssueAccessToken(ctx, user, rc)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issuer.IssueRefreshToken(ctx, user.ID, rc)
	if err != nil {
		return nil, err
	}

	return &dtos.TokenInfo{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string, rc models.RequestContext) (*dtos.TokenInfo, error) {
	userID, _, err := s.guard.Authenticate(ctx, refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	// Re-read the identity so the new access token carries the current
	// nickname rather than whatever the refresh token remembers.
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.IssueAccessToken(ctx, user, rc)
	if err != nil {
		return nil, err
	}

	return &dtos.TokenInfo{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string, logoutAll bool) (string, error) {
	userID, claims, err := s.guard.Authenticate(ctx, accessToken, models.TokenTypeAccess)
	if err != nil {
		return "", err
	}

	if logoutAll {
		if err := s.revoker.RevokeAllUserTokens(ctx, userID, ReasonLogoutAll); err != nil {
			return "", err
		}
		return LogoutAllDetails, nil
	}

	if err := s.revoker.RevokeToken(ctx, claims.ID, ReasonLogout); err != nil {
		return "", err
	}
	return LogoutDetails, nil
}

func (s *authService) Me(ctx context.Context, accessToken string) (*models.User, error) {
	userID, _, err := s.guard.Authenticate(ctx, accessToken, models.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}
