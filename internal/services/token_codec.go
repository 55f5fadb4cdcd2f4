package services

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/utils"
)

// ---------------------------------------------------------------------
// TokenCodec interface
// ---------------------------------------------------------------------

// TokenCodec signs and verifies token claim sets. Signing uses the RSA
// private key; verification needs only the public key, so it can run in a
// different trust boundary.
type TokenCodec interface {
	// Encode stamps iat/exp at call time from ttl and signs the claims.
	Encode(claims *models.TokenClaims, ttl time.Duration) (string, error)

	// Decode verifies signature and expiry. Any failure (bad signature,
	// expired, malformed input) maps to utils.ErrInvalidToken; claims are
	// never returned unverified.
	Decode(tokenString string) (*models.TokenClaims, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type rsaTokenCodec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

func NewRSATokenCodec(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) TokenCodec {
	return &rsaTokenCodec{
		privateKey: privateKey,
		publicKey:  publicKey,
	}
}

func (c *rsaTokenCodec) Encode(claims *models.TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()

	stamped := *claims
	stamped.IssuedAt = jwt.NewNumericDate(now)
	stamped.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &stamped)
	return token.SignedString(c.privateKey)
}

func (c *rsaTokenCodec) Decode(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		utils.Logger.WithError(err).Debug("token decode failed")
		return nil, utils.ErrInvalidToken
	}
	if !token.Valid {
		return nil, utils.ErrInvalidToken
	}
	return claims, nil
}
