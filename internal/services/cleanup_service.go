package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	"github.com/spawlov/auth-service/internal/repositories"
	"github.com/spawlov/auth-service/internal/utils"
)

const cleanupRetryDelay = 3 * time.Second

// CleanupService prunes rows that can no longer affect verification: token
// records older than the refresh window (the token itself fails expiry
// checks long before its record goes) and expired rate-limit counters.
type CleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type cleanupService struct {
	tokenRepo repositories.TokenRecordRepository
	rateRepo  repositories.RateLimitRepository
	retention time.Duration
}

// NewCleanupService keeps token records for at least retention (the refresh
// token lifetime) after creation.
func NewCleanupService(
	tokenRepo repositories.TokenRecordRepository,
	rateRepo repositories.RateLimitRepository,
	retention time.Duration,
) CleanupService {
	return &cleanupService{
		tokenRepo: tokenRepo,
		rateRepo:  rateRepo,
		retention: retention,
	}
}

// runWithRetry executes op(ctx) and, if it returns a transient network
// error (EOF, pgconn safe-to-retry, or the common closed-connection
// message), waits a moment then retries once.
func (s *cleanupService) runWithRetry(
	ctx context.Context,
	op func(context.Context) error,
) error {
	if err := op(ctx); err != nil {
		if errors.Is(err, io.EOF) || pgconn.SafeToRetry(err) ||
			strings.Contains(err.Error(), "connection was closed") {
			utils.Logger.WithError(err).Warn("cleanup hit transient DB error; retrying once")
			time.Sleep(cleanupRetryDelay)
			return op(ctx)
		}
		return err
	}
	return nil
}

func (s *cleanupService) CleanupDaily(ctx context.Context) error {
	logger := utils.Logger

	cutoff := time.Now().Add(-s.retention)
	if err := s.runWithRetry(ctx, func(ctx context.Context) error {
		return s.tokenRepo.CleanupExpired(ctx, cutoff)
	}); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired token_records")
		return err
	}

	if err := s.runWithRetry(ctx, s.rateRepo.CleanupExpired); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired rate_limit_attempts")
		return err
	}

	logger.Info("Daily cleanup completed successfully.")
	return nil
}
