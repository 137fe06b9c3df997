package http

import (
	"net/http"

	"github.com/atinyakov/hackorsnooze/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// Hack or Snooze API surface. It applies JSON content-type enforcement
// and request logging, and mounts the auth, story, and user endpoints.
//
// Routes:
//
//	POST   /signup                                → authHandler.Signup
//	POST   /login                                 → authHandler.Login
//	GET    /stories                               → storyHandler.List
//	POST   /stories                               → storyHandler.Create
//	DELETE /stories/{storyID}                     → storyHandler.Delete
//	GET    /users/{username}                      → userHandler.GetUser      (TokenAuth)
//	POST   /users/{username}/favorites/{storyID}  → userHandler.AddFavorite  (TokenAuth)
//	DELETE /users/{username}/favorites/{storyID}  → userHandler.RemoveFavorite (TokenAuth)
func NewRouter(
	authHandler *AuthHandler,
	storyHandler *StoryHandler,
	userHandler *UserHandler,
	auth middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Get("/stories", storyHandler.List)

	// Token in the request body, authenticated by the handler
	r.Post("/stories", storyHandler.Create)
	r.Delete("/stories/{storyID}", storyHandler.Delete)

	// Protected group: requires a valid session token
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.TokenAuth(auth))
		r.Get("/{username}", userHandler.GetUser)
		r.Post("/{username}/favorites/{storyID}", userHandler.AddFavorite)
		r.Delete("/{username}/favorites/{storyID}", userHandler.RemoveFavorite)
	})

	return r
}
