package models

// User represents a registered account. Password always holds the
// Argon2id hash, never plaintext.
type User struct {
	ID          int64   `json:"id"`
	Nickname    string  `json:"nickname"`
	Password    string  `json:"password"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
}
