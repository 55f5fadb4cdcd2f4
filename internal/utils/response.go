package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorResponse is the wire shape for every failed request: a single
// human-readable detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RespondError builds a JSON error response with the public detail string.
// Optional devErrs are logged but never leaked to the caller.
func RespondError(
	w http.ResponseWriter,
	status int,
	detail string,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: detail})

	// devErr is optional; only handle if provided
	if len(devErrs) > 0 && devErrs[0] != nil {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"error":  devErrs[0].Error(),
		}).Error(detail)
	} else {
		Logger.WithFields(logrus.Fields{
			"status": status,
		}).Warn(detail)
	}
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
