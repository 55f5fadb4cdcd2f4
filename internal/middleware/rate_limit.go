package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spawlov/auth-service/internal/services"
	"github.com/spawlov/auth-service/internal/utils"
)

// LoginRateLimit guards the login endpoint with a per-client-address
// counter. It runs before the credential verifier so lockouts cost no
// database password work. The limiter is injected, never process-global.
func LoginRateLimit(limiter services.RateLimiterService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r)

			if err := limiter.CheckLoginRateLimit(r.Context(), ip); err != nil {
				if errors.Is(err, utils.ErrRateLimitExceeded) {
					utils.RespondError(
						w, http.StatusTooManyRequests, "Too many requests. Try again later.",
					)
					return
				}
				utils.RespondError(
					w, http.StatusInternalServerError, "Internal server error", err,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
