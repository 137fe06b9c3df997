package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/hackorsnooze/internal/client/api"
	"github.com/atinyakov/hackorsnooze/internal/models"
)

const listingBody = `{"stories":[
	{"storyId":"s1","title":"First","author":"A","url":"https://a.com","username":"u1","createdAt":"2024-01-02T00:00:00Z"},
	{"storyId":"s2","title":"Second","author":"B","url":"https://b.com","username":"u2","createdAt":"2024-01-01T00:00:00Z"}
]}`

// newFakeService starts a fake remote service and returns an api.Client
// pointed at it.
func newFakeService(t *testing.T, mux *http.ServeMux) *api.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, srv.Client(), nil)
}

func TestFetchStoryList_PreservesOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /stories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingBody))
	})
	client := newFakeService(t, mux)

	list, err := FetchStoryList(context.Background(), client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Stories) != 2 {
		t.Fatalf("len = %d; want 2", len(list.Stories))
	}
	if list.Stories[0].ID != "s1" || list.Stories[1].ID != "s2" {
		t.Errorf("order = %s, %s; want s1, s2", list.Stories[0].ID, list.Stories[1].ID)
	}
}

func TestAdd_PrependConsistency(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /stories", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string              `json:"token"`
			Story models.StoryPayload `json:"story"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token != "tok" {
			t.Errorf("unexpected request: %+v err %v", req, err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"story": models.Story{
			StoryID:  "new",
			Title:    req.Story.Title,
			Author:   req.Story.Author,
			URL:      req.Story.URL,
			Username: "alice",
		}})
	})
	client := newFakeService(t, mux)

	list := &StoryList{Stories: []Story{{ID: "s1"}, {ID: "s2"}}}
	user := &User{
		Username:   "alice",
		Token:      "tok",
		OwnStories: []Story{{ID: "old"}},
	}

	story, err := list.Add(context.Background(), client, user, models.StoryPayload{
		Title: "T", Author: "A", URL: "https://x.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if story.ID != "new" {
		t.Errorf("story.ID = %q; want new", story.ID)
	}

	// The new story leads both views; prior relative order is intact.
	if len(list.Stories) != 3 || list.Stories[0].ID != "new" ||
		list.Stories[1].ID != "s1" || list.Stories[2].ID != "s2" {
		t.Errorf("collection = %+v; want new, s1, s2", list.Stories)
	}
	if len(user.OwnStories) != 2 || user.OwnStories[0].ID != "new" || user.OwnStories[1].ID != "old" {
		t.Errorf("own stories = %+v; want new, old", user.OwnStories)
	}
}

func TestAdd_AnonymousFailsWithoutMutation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /stories", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the service without a token")
	})
	client := newFakeService(t, mux)

	list := &StoryList{Stories: []Story{{ID: "s1"}, {ID: "s2"}}}
	_, err := list.Add(context.Background(), client, nil, models.StoryPayload{
		Title: "T", Author: "A", URL: "https://x.com",
	})
	if err == nil || api.CodeOf(err) != api.CodeAuth {
		t.Fatalf("expected auth error, got %v", err)
	}
	if len(list.Stories) != 2 {
		t.Errorf("collection length = %d; want 2 (unchanged)", len(list.Stories))
	}
}

func TestAdd_ServiceFailureLeavesViewsUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /stories", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad fields"}}`))
	})
	client := newFakeService(t, mux)

	list := &StoryList{Stories: []Story{{ID: "s1"}}}
	user := &User{Username: "alice", Token: "tok"}

	_, err := list.Add(context.Background(), client, user, models.StoryPayload{Title: "T"})
	if err == nil || api.CodeOf(err) != api.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(list.Stories) != 1 || len(user.OwnStories) != 0 {
		t.Errorf("views mutated on failure: list=%d own=%d", len(list.Stories), len(user.OwnStories))
	}
}

func TestRemove(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /stories/s1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"story deleted"}`))
	})
	client := newFakeService(t, mux)

	list := &StoryList{Stories: []Story{{ID: "s1"}, {ID: "s2"}}}
	user := &User{
		Username:   "alice",
		Token:      "tok",
		OwnStories: []Story{{ID: "s1"}},
		Favorites:  []Story{{ID: "s1"}, {ID: "s2"}},
	}

	if err := list.Remove(context.Background(), client, user, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Stories) != 1 || list.Stories[0].ID != "s2" {
		t.Errorf("collection = %+v; want only s2", list.Stories)
	}
	if len(user.OwnStories) != 0 {
		t.Errorf("own stories = %+v; want empty", user.OwnStories)
	}
	if len(user.Favorites) != 1 || user.Favorites[0].ID != "s2" {
		t.Errorf("favorites = %+v; want only s2", user.Favorites)
	}
}
