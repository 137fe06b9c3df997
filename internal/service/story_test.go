package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/atinyakov/hackorsnooze/internal/repository"
	"github.com/atinyakov/hackorsnooze/internal/service"
)

type mockStories struct {
	ListStoriesFunc func(ctx context.Context) ([]models.Story, error)
	InsertStoryFunc func(ctx context.Context, s models.Story) error
	StoryByIDFunc   func(ctx context.Context, id string) (models.Story, error)
	DeleteStoryFunc func(ctx context.Context, id string) error
}

func (m *mockStories) ListStories(ctx context.Context) ([]models.Story, error) {
	return m.ListStoriesFunc(ctx)
}
func (m *mockStories) InsertStory(ctx context.Context, s models.Story) error {
	return m.InsertStoryFunc(ctx, s)
}
func (m *mockStories) StoryByID(ctx context.Context, id string) (models.Story, error) {
	return m.StoryByIDFunc(ctx, id)
}
func (m *mockStories) DeleteStory(ctx context.Context, id string) error {
	return m.DeleteStoryFunc(ctx, id)
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	var stored models.Story
	repo := &mockStories{
		InsertStoryFunc: func(_ context.Context, s models.Story) error {
			stored = s
			return nil
		},
	}
	svc := service.NewStoryService(repo)

	before := time.Now().UTC()
	story, err := svc.Create(context.Background(), "alice", models.StoryPayload{
		Title: "T", Author: "A", URL: "https://x.com/path",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if story.StoryID == "" {
		t.Error("expected an assigned identifier")
	}
	if story.Username != "alice" {
		t.Errorf("username = %q; want alice (from the token, not the payload)", story.Username)
	}
	if story.CreatedAt.Before(before) {
		t.Errorf("createdAt = %v; want >= %v", story.CreatedAt, before)
	}
	if stored.StoryID != story.StoryID {
		t.Errorf("stored %+v differs from returned %+v", stored, story)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := service.NewStoryService(&mockStories{})

	tests := []struct {
		name    string
		payload models.StoryPayload
	}{
		{"missing title", models.StoryPayload{URL: "https://x.com"}},
		{"missing url", models.StoryPayload{Title: "T"}},
		{"url without host", models.StoryPayload{Title: "T", URL: "not-a-url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "alice", tt.payload)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("error = %v; want ErrInvalidInput", err)
			}
		})
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	deleted := false
	repo := &mockStories{
		StoryByIDFunc: func(_ context.Context, id string) (models.Story, error) {
			return models.Story{StoryID: id, Username: "alice"}, nil
		},
		DeleteStoryFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	svc := service.NewStoryService(repo)

	if err := svc.Delete(context.Background(), "bob", "s1"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("error = %v; want ErrForbidden", err)
	}
	if deleted {
		t.Fatal("nothing should be deleted for a non-owner")
	}

	if err := svc.Delete(context.Background(), "alice", "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected the story to be deleted")
	}
}

func TestDelete_Unknown(t *testing.T) {
	repo := &mockStories{
		StoryByIDFunc: func(context.Context, string) (models.Story, error) {
			return models.Story{}, repository.ErrNotFound
		},
	}
	svc := service.NewStoryService(repo)

	if err := svc.Delete(context.Background(), "alice", "ghost"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestList_PassesThrough(t *testing.T) {
	want := []models.Story{{StoryID: "s1"}, {StoryID: "s2"}}
	repo := &mockStories{
		ListStoriesFunc: func(context.Context) ([]models.Story, error) {
			return want, nil
		},
	}
	svc := service.NewStoryService(repo)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].StoryID != "s1" {
		t.Errorf("stories = %+v; want %+v", got, want)
	}
}
