package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/repositories"
)

// ---------------------------------------------------------------------
// TokenIssuer interface
// ---------------------------------------------------------------------

// TokenIssuer mints signed tokens. Each mint writes a TokenRecord to the
// revocation store before the token string exists, so a token can never be
// in circulation without being tracked.
type TokenIssuer interface {
	// IssueAccessToken mints a short-lived access token carrying the
	// subject and username.
	IssueAccessToken(ctx context.Context, user *models.User, rc models.RequestContext) (string, error)

	// IssueRefreshToken mints a long-lived refresh token carrying the
	// subject only.
	IssueRefreshToken(ctx context.Context, userID int64, rc models.RequestContext) (string, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type tokenIssuer struct {
	codec      TokenCodec
	tokenRepo  repositories.TokenRecordRepository
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(
	codec TokenCodec,
	tokenRepo repositories.TokenRecordRepository,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) TokenIssuer {
	return &tokenIssuer{
		codec:      codec,
		tokenRepo:  tokenRepo,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *tokenIssuer) IssueAccessToken(ctx context.Context, user *models.User, rc models.RequestContext) (string, error) {
	return s.mint(ctx, models.TokenTypeAccess, user.ID, user.Nickname, s.accessTTL, rc)
}

func (s *tokenIssuer) IssueRefreshToken(ctx context.Context, userID int64, rc models.RequestContext) (string, error) {
	// Username intentionally omitted: refresh tokens carry the minimal
	// identity surface.
	return s.mint(ctx, models.TokenTypeRefresh, userID, "", s.refreshTTL, rc)
}

// mint persists the revocation record first and only then signs the token.
// If the insert fails, no token exists.
func (s *tokenIssuer) mint(
	ctx context.Context,
	tokenType models.TokenType,
	userID int64,
	username string,
	ttl time.Duration,
	rc models.RequestContext,
) (string, error) {
	jti := uuid.NewString()

	record := &models.TokenRecord{
		JTI:       jti,
		UserID:    userID,
		TokenType: tokenType,
	}
	if rc.IPAddress != "" {
		record.IPAddress = &rc.IPAddress
	}
	if rc.UserAgent != "" {
		record.UserAgent = &rc.UserAgent
	}

	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("persisting token record: %w", err)
	}

	claims := &models.TokenClaims{
		Type:     tokenType,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(userID, 10),
			ID:      jti,
		},
	}
	return s.codec.Encode(claims, ttl)
}
