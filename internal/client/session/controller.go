package session

import (
	"context"

	"github.com/atinyakov/hackorsnooze/internal/client/api"
	"github.com/atinyakov/hackorsnooze/internal/client/credcache"
	"go.uber.org/zap"
)

// State is the controller's position in the session lifecycle.
type State int

const (
	// StateAnonymous means no user is logged in.
	StateAnonymous State = iota
	// StateRestoring means a cached credential pair is being verified.
	StateRestoring
	// StateAuthenticated means a user is logged in.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Controller owns the process-wide current session and drives its
// transitions: signup, login, restore-from-cache, logout. It keeps the
// credential cache in sync with the in-memory user. Transitions are
// initiated one at a time by the caller; the controller does not defend
// against overlapping calls.
type Controller struct {
	client *api.Client
	cache  *credcache.Cache
	log    *zap.Logger

	state State
	user  *User
}

// NewController returns a Controller in the anonymous state.
func NewController(client *api.Client, cache *credcache.Cache, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		client: client,
		cache:  cache,
		log:    log,
		state:  StateAnonymous,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Current returns the active user, or nil when not authenticated.
func (c *Controller) Current() *User {
	return c.user
}

// Restore attempts to re-establish a session from the credential cache.
// Any failure (missing cache, bad token, network trouble) degrades to
// the anonymous state with the failure logged, never surfaced; the
// cache is left untouched so the next run retries. Returns the restored
// user, or nil if the process stays anonymous.
func (c *Controller) Restore(ctx context.Context) *User {
	entry, ok := c.cache.Load()
	if !ok {
		c.log.Debug("no cached credentials")
		c.state = StateAnonymous
		c.user = nil
		return nil
	}

	c.state = StateRestoring
	w, err := c.client.UserByToken(ctx, entry.Username, entry.Token)
	if err != nil {
		c.log.Info("could not restore session",
			zap.String("username", entry.Username),
			zap.Error(err),
		)
		c.state = StateAnonymous
		c.user = nil
		return nil
	}

	c.user = userFromWire(w, entry.Token)
	c.state = StateAuthenticated
	c.log.Debug("session restored", zap.String("username", c.user.Username))
	return c.user
}

// Signup registers a new account, makes it the current session, and
// caches its credentials. On failure the state is unchanged and the
// error propagates.
func (c *Controller) Signup(ctx context.Context, username, password, name string) (*User, error) {
	w, token, err := c.client.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}
	return c.establish(userFromWire(w, token))
}

// Login authenticates an existing account, makes it the current
// session, and caches its credentials. On failure the state is
// unchanged and the error propagates.
func (c *Controller) Login(ctx context.Context, username, password string) (*User, error) {
	w, token, err := c.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.establish(userFromWire(w, token))
}

func (c *Controller) establish(user *User) (*User, error) {
	c.user = user
	c.state = StateAuthenticated
	if err := c.cache.Save(credcache.Entry{Token: user.Token, Username: user.Username}); err != nil {
		// The session is live either way; only the next restore degrades.
		c.log.Warn("could not cache credentials", zap.Error(err))
	}
	c.log.Debug("session established", zap.String("username", user.Username))
	return user, nil
}

// Logout discards the in-memory session and wipes the credential
// cache, returning to the anonymous state.
func (c *Controller) Logout() error {
	c.user = nil
	c.state = StateAnonymous
	if err := c.cache.Clear(); err != nil {
		return err
	}
	c.log.Debug("logged out")
	return nil
}
