package models

import (
	"time"
)

// TokenType discriminates the two token flavors. Access tokens carry the
// username alongside the subject; refresh tokens carry the subject only.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenRecord tracks an issued token in the durable revocation store.
// A row is written synchronously at mint time, before the signed token is
// ever handed to a caller, so a token can never be "not yet tracked".
// RevokedAt stays nil (and Reason with it) until the token is revoked.
type TokenRecord struct {
	ID        int64      `json:"id"`
	JTI       string     `json:"jti"`
	UserID    int64      `json:"user_id"`
	TokenType TokenType  `json:"token_type"`
	Reason    *string    `json:"reason,omitempty"`
	IPAddress *string    `json:"ip_address,omitempty"`
	UserAgent *string    `json:"user_agent,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Revoked reports whether the record has been marked revoked. Revocation is
// monotonic: once set, RevokedAt is never cleared.
func (r *TokenRecord) Revoked() bool {
	return r.RevokedAt != nil
}

// RequestContext carries the request-scoped metadata mirrored into a
// TokenRecord at mint time. Either field may be empty.
type RequestContext struct {
	IPAddress string
	UserAgent string
}
