package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/hackorsnooze/internal/models"
)

// PostgresStoryRepository implements story and favorite persistence
// against a PostgreSQL database.
type PostgresStoryRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository using
// the provided *sql.DB. db must be a valid connection to a PostgreSQL
// instance.
func NewPostgresStoryRepository(db *sql.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{DB: db}
}

const storyColumns = `id, title, author, url, username, created_at`

func scanStories(rows *sql.Rows) ([]models.Story, error) {
	defer rows.Close()
	stories := []models.Story{}
	for rows.Next() {
		var s models.Story
		if err := rows.Scan(&s.StoryID, &s.Title, &s.Author, &s.URL, &s.Username, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return stories, nil
}

// ListStories returns all stories, newest first.
func (r *PostgresStoryRepository) ListStories(ctx context.Context) ([]models.Story, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+storyColumns+` FROM stories ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListStories failed: %w", err)
	}
	return scanStories(rows)
}

// StoriesByUser returns the stories submitted by the given user,
// newest first.
func (r *PostgresStoryRepository) StoriesByUser(ctx context.Context, username string) ([]models.Story, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+storyColumns+` FROM stories WHERE username = $1 ORDER BY created_at DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("StoriesByUser failed: %w", err)
	}
	return scanStories(rows)
}

// FavoritesByUser returns the stories the given user has favorited, in
// the order the favorites were added.
func (r *PostgresStoryRepository) FavoritesByUser(ctx context.Context, username string) ([]models.Story, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT s.id, s.title, s.author, s.url, s.username, s.created_at
		  FROM stories s
		  JOIN favorites f ON f.story_id = s.id
		 WHERE f.username = $1
		 ORDER BY f.created_at
	`, username)
	if err != nil {
		return nil, fmt.Errorf("FavoritesByUser failed: %w", err)
	}
	return scanStories(rows)
}

// InsertStory stores a new story.
func (r *PostgresStoryRepository) InsertStory(ctx context.Context, s models.Story) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO stories (id, title, author, url, username, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.StoryID, s.Title, s.Author, s.URL, s.Username, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("InsertStory failed: %w", err)
	}
	return nil
}

// StoryByID fetches a single story. Returns ErrNotFound if it does not
// exist.
func (r *PostgresStoryRepository) StoryByID(ctx context.Context, id string) (models.Story, error) {
	var s models.Story
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+storyColumns+` FROM stories WHERE id = $1
	`, id).Scan(&s.StoryID, &s.Title, &s.Author, &s.URL, &s.Username, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Story{}, ErrNotFound
	}
	if err != nil {
		return models.Story{}, fmt.Errorf("StoryByID failed: %w", err)
	}
	return s, nil
}

// DeleteStory removes a story; favorites referencing it cascade away.
func (r *PostgresStoryRepository) DeleteStory(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteStory failed: %w", err)
	}
	return nil
}

// AddFavorite marks a story as a favorite of the user. Favoriting the
// same story twice is a no-op.
func (r *PostgresStoryRepository) AddFavorite(ctx context.Context, username, storyID string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO favorites (username, story_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, username, storyID)
	if err != nil {
		return fmt.Errorf("AddFavorite failed: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks a favorite. Removing an absent favorite is a
// no-op.
func (r *PostgresStoryRepository) RemoveFavorite(ctx context.Context, username, storyID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM favorites WHERE username = $1 AND story_id = $2
	`, username, storyID)
	if err != nil {
		return fmt.Errorf("RemoveFavorite failed: %w", err)
	}
	return nil
}
