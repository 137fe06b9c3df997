package session

import (
	"context"
	"net/http"
	"testing"
)

func TestIsFavorite(t *testing.T) {
	u := &User{Favorites: []Story{{ID: "f1"}, {ID: "f2"}}}
	if !u.IsFavorite("f1") {
		t.Error("expected f1 to be a favorite")
	}
	if u.IsFavorite("s9") {
		t.Error("expected s9 not to be a favorite")
	}
}

func TestFavoriteUnfavorite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/alice/favorites/s9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"username":"alice","name":"Alice","createdAt":"2023-06-01T00:00:00Z",
			"favorites":[{"storyId":"s9","title":"T","author":"A","url":"https://x.com","username":"bob","createdAt":"2024-01-01T00:00:00Z"}],
			"stories":[]}}`))
	})
	mux.HandleFunc("DELETE /users/alice/favorites/s9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"username":"alice","name":"Alice","createdAt":"2023-06-01T00:00:00Z","favorites":[],"stories":[]}}`))
	})
	client := newFakeService(t, mux)

	u := &User{Username: "alice", Token: "tok"}
	if err := u.Favorite(context.Background(), client, "s9"); err != nil {
		t.Fatalf("Favorite failed: %v", err)
	}
	if !u.IsFavorite("s9") {
		t.Error("expected s9 to be a favorite after Favorite")
	}

	if err := u.Unfavorite(context.Background(), client, "s9"); err != nil {
		t.Fatalf("Unfavorite failed: %v", err)
	}
	if u.IsFavorite("s9") {
		t.Error("expected s9 to be gone after Unfavorite")
	}
}
