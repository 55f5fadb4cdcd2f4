package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/spawlov/auth-service/internal/dtos"
	"github.com/spawlov/auth-service/internal/services"
	"github.com/spawlov/auth-service/internal/utils"
)

type UserController struct {
	userService services.UserService
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

var userValidate = validator.New()

// ---------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------

func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if err := userValidate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid registration data", err)
		return
	}

	user, err := c.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNicknameTaken):
			utils.RespondError(w, http.StatusConflict, "User with this nickname already exists")
		case errors.Is(err, utils.ErrEmailTaken):
			utils.RespondError(w, http.StatusConflict, "User with this email already exists")
		default:
			utils.RespondError(w, http.StatusBadRequest, "Could not create user", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.UserCreatedResponse{
		ID:       user.ID,
		Nickname: user.Nickname,
		Email:    user.Email,
	})
}

// ---------------------------------------------------------------------
// List
// ---------------------------------------------------------------------

func (c *UserController) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := c.userService.GetAll(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	resp := make([]dtos.UserReadResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dtos.UserReadResponse{
			ID:          u.ID,
			Nickname:    u.Nickname,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       u.Email,
			IsActive:    u.IsActive,
			IsSuperuser: u.IsSuperuser,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
