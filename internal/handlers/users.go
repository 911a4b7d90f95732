package handlers

//go:generate mockgen -source=users.go -destination=mock_users.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	CreateUser(ctx context.Context, username string) (*models.UserDB, error)
}

// UserLister lists every registered user.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserDB, error)
}

// CreateUserRequest represents the body for user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Username
	// required: true
	// default: alice
	Username string `json:"username" validate:"required,max=255,nonul"`
}

// UserResponse represents a user
// swagger:model UserResponse
type UserResponse struct {
	// Username
	// default: alice
	Username string `json:"username"`

	// Identifier token, 32 hex characters
	// default: 5f1e2b9c4d3a4b2c8e7f6a5b4c3d2e1f
	ID string `json:"id"`
}

// NewCreateUserHandler returns an HTTP handler for user creation.
// @Summary Create a user
// @Description Creates a user with an empty exercise log. Usernames are unique. Accepts JSON or url-encoded form bodies.
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User creation request"
// @Success 201 {object} handlers.UserResponse "User created"
// @Failure 400 {object} handlers.ErrorResponse "Missing username / invalid body"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest

		if isFormRequest(r) {
			req.Username = r.PostFormValue("username")
		} else if err := decodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			writeBadRequest(w, validationMessage(err))
			return
		}

		user, err := svc.CreateUser(r.Context(), req.Username)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, UserResponse{
			Username: user.Username,
			ID:       user.UserID,
		})
	}
}

// NewListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Description Returns every user, oldest first.
// @Tags users
// @Produce json
// @Success 200 {array} handlers.UserResponse "Users"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, UserResponse{Username: u.Username, ID: u.UserID})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
