package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the signed claim set. Type discriminates the mandatory
// fields: access tokens carry Username, refresh tokens omit it. Subject,
// IssuedAt, ExpiresAt and ID (jti) come from RegisteredClaims.
type TokenClaims struct {
	Type     TokenType `json:"type"`
	Username string    `json:"username,omitempty"`
	jwt.RegisteredClaims
}
