package controllers

import (
	"errors"
	"net/http"

	"github.com/spawlov/auth-service/internal/dtos"
	"github.com/spawlov/auth-service/internal/services"
	"github.com/spawlov/auth-service/internal/utils"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------

// Login accepts form-encoded credentials and returns an access+refresh pair.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	tokens, err := c.authService.Login(r.Context(), username, password, requestContext(r))
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.RespondError(w, http.StatusUnauthorized, "Invalid username or password")
		case errors.Is(err, utils.ErrAccountDisabled):
			utils.RespondError(w, http.StatusForbidden, "User account is disabled (not active)")
		default:
			// Unexpected failures are logged and converted to a generic
			// response so internals never leak.
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokens)
}

// ---------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------

// Refresh exchanges a bearer refresh token for a new access token.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	tokenStr, err := extractBearerToken(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid Token", err)
		return
	}

	tokens, err := c.authService.Refresh(r.Context(), tokenStr, requestContext(r))
	if err != nil {
		respondAuthError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokens)
}

// ---------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------

// Logout revokes the presented access token, or with ?logout_all=true every
// token of the authenticated user.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	tokenStr, err := extractBearerToken(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid Token", err)
		return
	}

	logoutAll := r.URL.Query().Get("logout_all") == "true"

	details, err := c.authService.Logout(r.Context(), tokenStr, logoutAll)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.LogoutResponse{
		Message: "success",
		Details: details,
	})
}

// ---------------------------------------------------------------------
// Me
// ---------------------------------------------------------------------

// Me returns the authenticated identity, excluding id and password.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	tokenStr, err := extractBearerToken(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid Token", err)
		return
	}

	user, err := c.authService.Me(r.Context(), tokenStr)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.AuthUserResponse{
		Nickname:    user.Nickname,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
	})
}
