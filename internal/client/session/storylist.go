package session

import (
	"context"

	"github.com/atinyakov/hackorsnooze/internal/client/api"
	"github.com/atinyakov/hackorsnooze/internal/models"
)

// StoryList is the ordered collection of all known stories, service
// order preserved on fetch, newest-first after local mutation. It is
// fetched once per run and mutated in place; there is no incremental
// re-sync.
type StoryList struct {
	Stories []Story
}

// FetchStoryList builds the collection from a full listing fetch.
func FetchStoryList(ctx context.Context, client *api.Client) (*StoryList, error) {
	ws, err := client.Stories(ctx)
	if err != nil {
		return nil, err
	}
	return &StoryList{Stories: storiesFromWire(ws)}, nil
}

// Add submits a new story with the user's token and, on success,
// prepends the service's echo to both the collection and the user's
// own-stories list in one step, so the two views cannot drift. Nothing
// is mutated on failure. A nil user has no token, so the call fails
// with an auth error before any request is sent.
func (l *StoryList) Add(ctx context.Context, client *api.Client, user *User, payload models.StoryPayload) (Story, error) {
	var token string
	if user != nil {
		token = user.Token
	}
	w, err := client.CreateStory(ctx, token, payload)
	if err != nil {
		return Story{}, err
	}

	story := storyFromWire(w)
	l.Stories = append([]Story{story}, l.Stories...)
	user.OwnStories = append([]Story{story}, user.OwnStories...)
	return story, nil
}

// Remove deletes the story on the service and drops it from the
// collection and from the user's own-stories and favorites lists.
func (l *StoryList) Remove(ctx context.Context, client *api.Client, user *User, storyID string) error {
	var token string
	if user != nil {
		token = user.Token
	}
	if err := client.DeleteStory(ctx, token, storyID); err != nil {
		return err
	}

	l.Stories = dropStory(l.Stories, storyID)
	user.OwnStories = dropStory(user.OwnStories, storyID)
	user.Favorites = dropStory(user.Favorites, storyID)
	return nil
}

func dropStory(stories []Story, storyID string) []Story {
	out := stories[:0]
	for _, s := range stories {
		if s.ID != storyID {
			out = append(out, s)
		}
	}
	return out
}
