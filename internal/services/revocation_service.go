package services

import (
	"context"

	"github.com/spawlov/auth-service/internal/repositories"
	"github.com/spawlov/auth-service/internal/utils"
)

// ---------------------------------------------------------------------
// RevocationService interface
// ---------------------------------------------------------------------

// RevocationService marks tokens revoked in the durable store and keeps the
// fast-path cache in sync.
type RevocationService interface {
	// RevokeToken revokes a single token by jti. Revoking an
	// already-revoked token is a silent no-op (revocation is idempotent);
	// an unknown jti returns utils.ErrTokenRecordNotFound.
	RevokeToken(ctx context.Context, jti string, reason string) error

	// RevokeAllUserTokens revokes every live token of the user (both
	// types) in one bounded statement. Zero live records is not an error.
	RevokeAllUserTokens(ctx context.Context, userID int64, reason string) error
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type revocationService struct {
	tokenRepo repositories.TokenRecordRepository
	cache     *RevocationCache
}

func NewRevocationService(tokenRepo repositories.TokenRecordRepository, cache *RevocationCache) RevocationService {
	return &revocationService{
		tokenRepo: tokenRepo,
		cache:     cache,
	}
}

func (s *revocationService) RevokeToken(ctx context.Context, jti string, reason string) error {
	affected, err := s.tokenRepo.RevokeByJTI(ctx, jti, reason)
	if err != nil {
		return err
	}

	if affected == 0 {
		record, err := s.tokenRepo.GetByJTI(ctx, jti)
		if err != nil {
			return err
		}
		if record == nil {
			utils.Logger.Warnf("Revoke requested for unknown jti %s", jti)
			return utils.ErrTokenRecordNotFound
		}
		// Already revoked: nothing to do.
	}

	s.cache.Add(jti)
	return nil
}

func (s *revocationService) RevokeAllUserTokens(ctx context.Context, userID int64, reason string) error {
	jtis, err := s.tokenRepo.RevokeAllByUserID(ctx, userID, reason)
	if err != nil {
		return err
	}

	s.cache.AddAll(jtis)
	utils.Logger.Infof("Revoked %d tokens for user %d", len(jtis), userID)
	return nil
}
