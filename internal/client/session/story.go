// Package session holds the client's in-memory domain state: the story
// collection, the current user, and the controller that moves the
// session between anonymous and authenticated.
package session

import (
	"net/url"
	"time"

	"github.com/atinyakov/hackorsnooze/internal/client/api"
	"github.com/atinyakov/hackorsnooze/internal/models"
)

// Story is a single story in the domain model. Immutable after
// construction; ID is empty only before the service accepts a
// creation request.
type Story struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt time.Time
}

// HostName derives the host part of the story URL for display, e.g.
// "example.com" for "https://example.com/a/b".
func (s Story) HostName() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", api.ErrURLParse("parse story url " + s.URL).WithCause(err)
	}
	if u.Host == "" {
		return "", api.ErrURLParse("story url has no host: " + s.URL)
	}
	return u.Hostname(), nil
}

func storyFromWire(w models.Story) Story {
	return Story{
		ID:        w.StoryID,
		Title:     w.Title,
		Author:    w.Author,
		URL:       w.URL,
		Username:  w.Username,
		CreatedAt: w.CreatedAt,
	}
}

func storiesFromWire(ws []models.Story) []Story {
	out := make([]Story, 0, len(ws))
	for _, w := range ws {
		out = append(out, storyFromWire(w))
	}
	return out
}
