// Package api is the HTTP client for the Hack or Snooze service. It
// issues one request per operation, translates responses into wire
// records, and maps failures onto a small error taxonomy. There is no
// retry policy: every failure is propagated once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/atinyakov/hackorsnooze/internal/models"
	"go.uber.org/zap"
)

// Client talks to one Hack or Snooze endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// New constructs a Client for the given base URL. httpc may be nil, in
// which case a default client is used.
func New(baseURL string, httpc *http.Client, log *zap.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		log:     log,
	}
}

// Stories fetches the full story listing. No authentication required.
// Order is the service's order.
func (c *Client) Stories(ctx context.Context) ([]models.Story, error) {
	var out struct {
		Stories []models.Story `json:"stories"`
	}
	if err := c.get(ctx, "/stories", &out); err != nil {
		return nil, err
	}
	return out.Stories, nil
}

// CreateStory submits a new story and returns the service's echo of it,
// including the assigned identifier. An empty token fails locally with
// an auth error before any request is sent.
func (c *Client) CreateStory(ctx context.Context, token string, payload models.StoryPayload) (models.Story, error) {
	if token == "" {
		return models.Story{}, ErrAuth("a login token is required to submit a story")
	}
	body := struct {
		Token string              `json:"token"`
		Story models.StoryPayload `json:"story"`
	}{Token: token, Story: payload}

	var out struct {
		Story models.Story `json:"story"`
	}
	if err := c.send(ctx, http.MethodPost, "/stories", body, &out); err != nil {
		return models.Story{}, err
	}
	return out.Story, nil
}

// DeleteStory removes a story. Only the submitting user's token is
// accepted by the service.
func (c *Client) DeleteStory(ctx context.Context, token, storyID string) error {
	if token == "" {
		return ErrAuth("a login token is required to delete a story")
	}
	body := struct {
		Token string `json:"token"`
	}{Token: token}
	return c.send(ctx, http.MethodDelete, "/stories/"+url.PathEscape(storyID), body, nil)
}

// Signup registers a new account and returns the user record plus the
// issued token. A duplicate username surfaces as an auth error.
func (c *Client) Signup(ctx context.Context, username, password, name string) (models.User, string, error) {
	return c.auth(ctx, "/signup", models.Credentials{
		Username: username,
		Password: password,
		Name:     name,
	})
}

// Login authenticates an existing account and returns the user record
// plus the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, string, error) {
	return c.auth(ctx, "/login", models.Credentials{
		Username: username,
		Password: password,
	})
}

func (c *Client) auth(ctx context.Context, path string, creds models.Credentials) (models.User, string, error) {
	body := struct {
		User models.Credentials `json:"user"`
	}{User: creds}

	var out struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := c.send(ctx, http.MethodPost, path, body, &out); err != nil {
		return models.User{}, "", err
	}
	return out.User, out.Token, nil
}

// UserByToken fetches the full user record for a cached token/username
// pair. Used by the restore-from-cache path.
func (c *Client) UserByToken(ctx context.Context, username, token string) (models.User, error) {
	path := "/users/" + url.PathEscape(username) + "?token=" + url.QueryEscape(token)
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.get(ctx, path, &out); err != nil {
		return models.User{}, err
	}
	return out.User, nil
}

// AddFavorite marks a story as a favorite of the user and returns the
// updated user record.
func (c *Client) AddFavorite(ctx context.Context, token, username, storyID string) (models.User, error) {
	return c.favorite(ctx, http.MethodPost, token, username, storyID)
}

// RemoveFavorite unmarks a favorite and returns the updated user record.
func (c *Client) RemoveFavorite(ctx context.Context, token, username, storyID string) (models.User, error) {
	return c.favorite(ctx, http.MethodDelete, token, username, storyID)
}

func (c *Client) favorite(ctx context.Context, method, token, username, storyID string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrAuth("a login token is required to change favorites")
	}
	path := fmt.Sprintf("/users/%s/favorites/%s", url.PathEscape(username), url.PathEscape(storyID))
	body := struct {
		Token string `json:"token"`
	}{Token: token}

	var out struct {
		User models.User `json:"user"`
	}
	if err := c.send(ctx, method, path, body, &out); err != nil {
		return models.User{}, err
	}
	return out.User, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return ErrNetwork("build request: " + err.Error()).WithCause(err)
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return ErrService("encode request body: " + err.Error()).WithCause(err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return ErrNetwork("build request: " + err.Error()).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return ErrNetwork(req.Method + " " + req.URL.Path + " failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serviceMessage(resp.Body)
		c.log.Debug("request rejected",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return classify(resp.StatusCode, msg)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ErrService("invalid response body").WithCause(err)
	}
	return nil
}

// serviceMessage extracts the service's error message from a non-2xx
// response body. The service wraps it as {"error":{"message":...}};
// anything else falls back to the raw body text.
func serviceMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "service error"
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
