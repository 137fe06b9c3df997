package session

import (
	"context"
	"time"

	"github.com/atinyakov/hackorsnooze/internal/client/api"
	"github.com/atinyakov/hackorsnooze/internal/models"
)

// User is the authenticated identity and its associated data. At most
// one User is active per process; the Controller owns it. Favorites and
// OwnStories are populated once at construction and thereafter mutated
// only by this client's own operations.
type User struct {
	Username   string
	Name       string
	CreatedAt  time.Time
	Favorites  []Story
	OwnStories []Story

	// Token authenticates mutating calls. Never rendered.
	Token string
}

func userFromWire(w models.User, token string) *User {
	return &User{
		Username:   w.Username,
		Name:       w.Name,
		CreatedAt:  w.CreatedAt,
		Favorites:  storiesFromWire(w.Favorites),
		OwnStories: storiesFromWire(w.Stories),
		Token:      token,
	}
}

// IsFavorite reports whether the story with the given ID is among the
// user's favorites.
func (u *User) IsFavorite(storyID string) bool {
	for _, s := range u.Favorites {
		if s.ID == storyID {
			return true
		}
	}
	return false
}

// Favorite marks the story as a favorite on the service and replaces
// the local favorites list with the service's echo.
func (u *User) Favorite(ctx context.Context, client *api.Client, storyID string) error {
	w, err := client.AddFavorite(ctx, u.Token, u.Username, storyID)
	if err != nil {
		return err
	}
	u.Favorites = storiesFromWire(w.Favorites)
	return nil
}

// Unfavorite removes the story from the user's favorites on the
// service and replaces the local favorites list with the service's echo.
func (u *User) Unfavorite(ctx context.Context, client *api.Client, storyID string) error {
	w, err := client.RemoveFavorite(ctx, u.Token, u.Username, storyID)
	if err != nil {
		return err
	}
	u.Favorites = storiesFromWire(w.Favorites)
	return nil
}
