package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/atinyakov/hackorsnooze/internal/repository"
	"github.com/google/uuid"
)

// StoryRepository defines the persistence operations needed by the
// StoryService.
type StoryRepository interface {
	// ListStories returns all stories, newest first.
	ListStories(ctx context.Context) ([]models.Story, error)
	// InsertStory stores a new story.
	InsertStory(ctx context.Context, s models.Story) error
	// StoryByID fetches one story, or repository.ErrNotFound.
	StoryByID(ctx context.Context, id string) (models.Story, error)
	// DeleteStory removes a story and its favorite references.
	DeleteStory(ctx context.Context, id string) error
}

// StoryService implements the story listing and write operations.
type StoryService struct {
	repo StoryRepository
}

// NewStoryService constructs a StoryService with the provided
// StoryRepository.
func NewStoryService(repo StoryRepository) *StoryService {
	return &StoryService{repo: repo}
}

// List returns all stories, newest first.
func (s *StoryService) List(ctx context.Context) ([]models.Story, error) {
	return s.repo.ListStories(ctx)
}

// Create assigns the story an identifier and timestamp, stores it, and
// returns the stored record. The submitting username comes from the
// authenticated token, not the payload. Returns ErrInvalidInput for a
// missing title or an unparseable URL.
func (s *StoryService) Create(ctx context.Context, username string, p models.StoryPayload) (models.Story, error) {
	if p.Title == "" || p.URL == "" {
		return models.Story{}, ErrInvalidInput
	}
	if u, err := url.Parse(p.URL); err != nil || u.Host == "" {
		return models.Story{}, ErrInvalidInput
	}

	story := models.Story{
		StoryID:   uuid.NewString(),
		Title:     p.Title,
		Author:    p.Author,
		URL:       p.URL,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertStory(ctx, story); err != nil {
		return models.Story{}, err
	}
	return story, nil
}

// Delete removes a story. Only the submitting user may delete it:
// ErrNotFound for an unknown story, ErrForbidden for someone else's.
func (s *StoryService) Delete(ctx context.Context, username, storyID string) error {
	story, err := s.repo.StoryByID(ctx, storyID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if story.Username != username {
		return ErrForbidden
	}
	return s.repo.DeleteStory(ctx, storyID)
}
