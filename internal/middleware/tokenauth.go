// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// Authenticator resolves a session token to a username.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// TokenAuth is a middleware that enforces token authentication for the
// user endpoints.
//
// The Hack or Snooze API carries the token as a "token" query
// parameter on user reads and as a {"token":...} field in the JSON
// body of favorite writes; an Authorization header is accepted as a
// fallback. The middleware checks all three and restores the body for
// downstream handlers.
//
// On successful validation the resolved username is stored in the
// request context, so it can be used downstream as the authenticated
// user ID.
func TokenAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("token")
			if token == "" {
				token = r.Header.Get("Authorization")
			}
			if token == "" && r.Body != nil {
				token = bodyToken(r)
			}
			if token == "" {
				http.Error(w, "no token provided", http.StatusUnauthorized)
				return
			}
			username, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bodyToken pulls the "token" field out of a JSON request body and
// rewinds the body so handlers can still read it. Only the first MiB
// is inspected; the unread remainder stays attached to the restored
// body.
func bodyToken(r *http.Request) string {
	rest := r.Body
	raw, err := io.ReadAll(io.LimitReader(rest, 1<<20))
	if err != nil {
		return ""
	}
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(raw), rest), rest}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Token
}

// GetUsernameFromContext extracts the authenticated username from the
// request context. Returns an empty string if not found.
func GetUsernameFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
