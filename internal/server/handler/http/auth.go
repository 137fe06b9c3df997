package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/atinyakov/hackorsnooze/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Signup registers a new account and returns the user record plus
	// an issued token.
	Signup(ctx context.Context, creds models.Credentials) (models.User, string, error)
	// Login authenticates an account and returns the user record plus
	// an issued token.
	Login(ctx context.Context, creds models.Credentials) (models.User, string, error)
}

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// credentialsRequest is the {"user":{...}} envelope of signup and
// login request bodies.
type credentialsRequest struct {
	User models.Credentials `json:"user"`
}

// Signup handles POST /signup.
// It expects {"user":{"username","password","name"}} and responds with
// {"user":{...},"token":...}. A taken username yields 409.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, token, err := h.AuthService.Signup(r.Context(), req.User)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, "user already exists")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /login.
// It expects {"user":{"username","password"}} and responds with
// {"user":{...},"token":...}. Bad credentials yield 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.User)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	case errors.Is(err, service.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}
