package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/hackorsnooze/internal/middleware"
	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/atinyakov/hackorsnooze/internal/service"
	"github.com/go-chi/chi/v5"
)

// StoryService defines the story operations required by the HTTP
// handlers.
type StoryService interface {
	// List returns all stories, newest first.
	List(ctx context.Context) ([]models.Story, error)
	// Create stores a new story submitted by username and returns the
	// stored record with its assigned identifier.
	Create(ctx context.Context, username string, p models.StoryPayload) (models.Story, error)
	// Delete removes username's own story.
	Delete(ctx context.Context, username, storyID string) error
}

// StoryHandler handles HTTP requests for the story listing and the
// story write paths. Creation and deletion carry the token in the
// request body, so the handler authenticates them itself instead of
// relying on the token-auth middleware.
type StoryHandler struct {
	StoryService StoryService
	Auth         middleware.Authenticator
}

// List handles GET /stories. No authentication required. Responds with
// {"stories":[...]}.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.StoryService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": stories})
}

// Create handles POST /stories.
// It expects {"token":...,"story":{"title","author","url"}} and
// responds with {"story":{...}} carrying the assigned storyId.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string              `json:"token"`
		Story models.StoryPayload `json:"story"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	username, ok := h.authenticate(w, r, req.Token)
	if !ok {
		return
	}

	story, err := h.StoryService.Create(r.Context(), username, req.Story)
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "title and a valid url are required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"story": story})
}

// Delete handles DELETE /stories/{storyID} with a {"token":...} body.
// Only the submitting user may delete a story.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	username, ok := h.authenticate(w, r, req.Token)
	if !ok {
		return
	}

	err := h.StoryService.Delete(r.Context(), username, chi.URLParam(r, "storyID"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "story not found")
		return
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "you can only delete your own stories")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "story deleted"})
}

// authenticate resolves a body token, writing 401 on failure.
func (h *StoryHandler) authenticate(w http.ResponseWriter, r *http.Request, token string) (string, bool) {
	if token == "" {
		writeError(w, http.StatusUnauthorized, "no token provided")
		return "", false
	}
	username, err := h.Auth.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return "", false
	}
	return username, true
}
