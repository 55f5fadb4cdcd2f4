package services

import (
	"context"
	"fmt"
	"time"

	"github.com/spawlov/auth-service/internal/repositories"
	"github.com/spawlov/auth-service/internal/utils"
)

// RateLimiterService provides a high-level interface for checking request rate limits.
type RateLimiterService interface {
	// CheckLoginRateLimit counts a login attempt for the client address and
	// returns utils.ErrRateLimitExceeded once the window limit is hit.
	CheckLoginRateLimit(ctx context.Context, ip string) error
}

type rateLimiterService struct {
	repo     repositories.RateLimitRepository
	maxCalls int
	window   time.Duration
}

func NewRateLimiterService(repo repositories.RateLimitRepository, maxCalls int, window time.Duration) RateLimiterService {
	return &rateLimiterService{
		repo:     repo,
		maxCalls: maxCalls,
		window:   window,
	}
}

func (s *rateLimiterService) CheckLoginRateLimit(ctx context.Context, ip string) error {
	key := fmt.Sprintf("login:ip:%s", ip)
	allowed, err := s.repo.IncrementAndCheck(ctx, key, s.maxCalls, s.window)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Login rate limit exceeded (key: %s)", key)
		return utils.ErrRateLimitExceeded
	}
	return nil
}
