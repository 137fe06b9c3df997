package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/hackorsnooze/internal/middleware"
	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/atinyakov/hackorsnooze/internal/service"
	"github.com/go-chi/chi/v5"
)

// UserService defines the user-record operations required by the HTTP
// handlers.
type UserService interface {
	// User assembles the full user record including favorites and
	// submitted stories.
	User(ctx context.Context, username string) (models.User, error)
	// AddFavorite marks a story as a favorite and returns the updated
	// full user record.
	AddFavorite(ctx context.Context, username, storyID string) (models.User, error)
	// RemoveFavorite unmarks a favorite and returns the updated full
	// user record.
	RemoveFavorite(ctx context.Context, username, storyID string) (models.User, error)
}

// UserHandler handles HTTP requests under /users. All routes are
// behind the token-auth middleware, which puts the token's username in
// the request context.
type UserHandler struct {
	UserService UserService
}

// requireSelf returns the path username if it matches the
// authenticated one, otherwise writes 401 and returns "".
// A user's record and favorites are only visible to their own token.
func requireSelf(w http.ResponseWriter, r *http.Request) string {
	username := chi.URLParam(r, "username")
	if username == "" || username != middleware.GetUsernameFromContext(r.Context()) {
		writeError(w, http.StatusUnauthorized, "token does not match requested user")
		return ""
	}
	return username
}

// GetUser handles GET /users/{username}?token=...
// Responds with {"user":{...}} including favorites and stories.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := requireSelf(w, r)
	if username == "" {
		return
	}

	user, err := h.UserService.User(r.Context(), username)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// AddFavorite handles POST /users/{username}/favorites/{storyID}.
// Responds with the updated {"user":{...}}.
func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.UserService.AddFavorite)
}

// RemoveFavorite handles DELETE /users/{username}/favorites/{storyID}.
// Responds with the updated {"user":{...}}.
func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.UserService.RemoveFavorite)
}

func (h *UserHandler) favorite(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, username, storyID string) (models.User, error),
) {
	username := requireSelf(w, r)
	if username == "" {
		return
	}

	user, err := op(r.Context(), username, chi.URLParam(r, "storyID"))
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
