package dtos

// ----------------------
// Login / Refresh
// ----------------------

// TokenInfo is returned by login (both tokens) and refresh (access only).
type TokenInfo struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// ----------------------
// Logout
// ----------------------

type LogoutResponse struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// ----------------------
// Me
// ----------------------

// AuthUserResponse is the /auth/me payload: the identity minus its id and
// password hash.
type AuthUserResponse struct {
	Nickname    string  `json:"nickname"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
}
