package handler

import (
	"time"

	"github.com/inkwell/content-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Lastname string `json:"lastname" validate:"required"`
	Age      int    `json:"age"      validate:"required,gt=0"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateAccountRequest carries partial profile changes. Omitted fields stay
// unchanged; a non-empty password replaces the current one.
type updateAccountRequest struct {
	Name     string `json:"name,omitempty"`
	Lastname string `json:"lastname,omitempty"`
	Age      int    `json:"age,omitempty"      validate:"omitempty,gt=0"`
	Email    string `json:"email,omitempty"    validate:"omitempty,email"`
	Password string `json:"password,omitempty"`
}

// --- Response types ---

// userResponse is the account representation exposed over HTTP. The password
// hash never appears here.
type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Age:       u.Age,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toListUsersResponse(users []*domain.User) listUsersResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = *toUserResponse(u)
	}
	return listUsersResponse{Data: out}
}
