package utils

import (
	"errors"
	"fmt"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons. Controllers translate these into
// HTTP statuses and the public detail strings.
var (
	// Credential verification
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("user account is disabled")

	// Token verification (decode stage: bad signature, expired, malformed)
	ErrInvalidToken = errors.New("invalid token")

	// Claims payload absent or not decodable into a claim set
	ErrMalformedPayload = errors.New("malformed token payload")

	// Token is tracked and has been revoked
	ErrTokenRevoked = errors.New("token revoked")

	// Claims carry no usable subject
	ErrSubjectMissing = errors.New("token subject missing")

	// Registration conflicts
	ErrNicknameTaken = errors.New("nickname already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// Lookups
	ErrUserNotFound        = errors.New("user not found")
	ErrTokenRecordNotFound = errors.New("token record not found")

	// For rate limiting
	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")
)

// WrongTokenTypeError is returned when a syntactically valid token of the
// wrong type is presented (e.g. a refresh token on an access-only endpoint).
// The message carries both types so clients can diagnose the mix-up.
type WrongTokenTypeError struct {
	Observed string
	Expected string
}

func (e *WrongTokenTypeError) Error() string {
	return fmt.Sprintf("Invalid token type: '%s', expected '%s'", e.Observed, e.Expected)
}
