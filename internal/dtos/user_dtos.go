package dtos

// ----------------------
// Registration
// ----------------------

type RegisterUserRequest struct {
	Nickname  string  `json:"nickname" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type UserCreatedResponse struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// ----------------------
// Listing
// ----------------------

type UserReadResponse struct {
	ID          int64   `json:"id"`
	Nickname    string  `json:"nickname"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
}
