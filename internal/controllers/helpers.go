package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/utils"
)

// extractBearerToken reads the token from the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}

// requestContext captures the client metadata mirrored into token records.
func requestContext(r *http.Request) models.RequestContext {
	return models.RequestContext{
		IPAddress: utils.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// respondAuthError translates the session-guard error taxonomy into the
// HTTP statuses and detail strings of the public contract.
func respondAuthError(w http.ResponseWriter, err error) {
	var wrongType *utils.WrongTokenTypeError

	switch {
	case errors.Is(err, utils.ErrInvalidToken):
		utils.RespondError(w, http.StatusUnauthorized, "Invalid Token", err)
	case errors.Is(err, utils.ErrMalformedPayload):
		utils.RespondError(w, http.StatusBadRequest, "No token payload provided or wrong token payload type", err)
	case errors.Is(err, utils.ErrTokenRevoked):
		utils.RespondError(w, http.StatusForbidden, "Token revoked", err)
	case errors.As(err, &wrongType):
		utils.RespondError(w, http.StatusUnauthorized, wrongType.Error(), err)
	case errors.Is(err, utils.ErrSubjectMissing):
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token", err)
	case errors.Is(err, utils.ErrUserNotFound):
		utils.RespondError(w, http.StatusNotFound, "User not found", err)
	case errors.Is(err, utils.ErrTokenRecordNotFound):
		utils.RespondError(w, http.StatusNotFound, "Token record not found", err)
	default:
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}
