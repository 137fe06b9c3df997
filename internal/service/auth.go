package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/atinyakov/hackorsnooze/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// CreateUser creates a new account. Must return
	// repository.ErrDuplicate for a taken username.
	CreateUser(ctx context.Context, username, name string, passwordHash []byte) error
	// PasswordHash returns the stored hash for the username, or
	// repository.ErrNotFound.
	PasswordHash(ctx context.Context, username string) ([]byte, error)
	// UserRecord returns the base user record without favorites or
	// stories, or repository.ErrNotFound.
	UserRecord(ctx context.Context, username string) (models.User, error)
	// CreateSession records a newly issued token for the user.
	CreateSession(ctx context.Context, token, username string) error
	// UsernameByToken resolves a token, or repository.ErrNotFound.
	UsernameByToken(ctx context.Context, token string) (string, error)
}

// UserStoryRepository provides the per-user story lists needed to
// assemble a full user record.
type UserStoryRepository interface {
	StoriesByUser(ctx context.Context, username string) ([]models.Story, error)
	FavoritesByUser(ctx context.Context, username string) ([]models.Story, error)
	StoryByID(ctx context.Context, id string) (models.Story, error)
	AddFavorite(ctx context.Context, username, storyID string) error
	RemoveFavorite(ctx context.Context, username, storyID string) error
}

// AuthService implements signup, login, token resolution, and
// favorite management.
type AuthService struct {
	repo    AuthRepository
	stories UserStoryRepository
}

// NewAuthService constructs an AuthService using the provided
// repositories.
func NewAuthService(repo AuthRepository, stories UserStoryRepository) *AuthService {
	return &AuthService{repo: repo, stories: stories}
}

// Signup registers a new account and issues a token. Returns
// ErrUserExists for a taken username and ErrInvalidInput for missing
// fields.
func (s *AuthService) Signup(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	if creds.Username == "" || creds.Password == "" {
		return models.User{}, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.CreateUser(ctx, creds.Username, creds.Name, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, "", ErrUserExists
		}
		return models.User{}, "", err
	}

	token, err := s.issueToken(ctx, creds.Username)
	if err != nil {
		return models.User{}, "", err
	}
	user, err := s.User(ctx, creds.Username)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login authenticates an account and issues a token. An unknown
// username and a wrong password both return ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	if creds.Username == "" || creds.Password == "" {
		return models.User{}, "", ErrInvalidInput
	}

	hash, err := s.repo.PasswordHash(ctx, creds.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, "", ErrBadCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)) != nil {
		return models.User{}, "", ErrBadCredentials
	}

	token, err := s.issueToken(ctx, creds.Username)
	if err != nil {
		return models.User{}, "", err
	}
	user, err := s.User(ctx, creds.Username)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := s.repo.CreateSession(ctx, token, username); err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a token to its username. Returns
// ErrInvalidToken for unknown tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	username, err := s.repo.UsernameByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

// User assembles the full user record: base fields plus favorites and
// submitted stories. Returns ErrNotFound for an unknown username.
func (s *AuthService) User(ctx context.Context, username string) (models.User, error) {
	user, err := s.repo.UserRecord(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	if user.Favorites, err = s.stories.FavoritesByUser(ctx, username); err != nil {
		return models.User{}, err
	}
	if user.Stories, err = s.stories.StoriesByUser(ctx, username); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AddFavorite marks the story as a favorite of the user and returns
// the updated full user record. Returns ErrNotFound for an unknown
// story.
func (s *AuthService) AddFavorite(ctx context.Context, username, storyID string) (models.User, error) {
	if _, err := s.stories.StoryByID(ctx, storyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	if err := s.stories.AddFavorite(ctx, username, storyID); err != nil {
		return models.User{}, err
	}
	return s.User(ctx, username)
}

// RemoveFavorite unmarks a favorite and returns the updated full user
// record.
func (s *AuthService) RemoveFavorite(ctx context.Context, username, storyID string) (models.User, error) {
	if err := s.stories.RemoveFavorite(ctx, username, storyID); err != nil {
		return models.User{}, err
	}
	return s.User(ctx, username)
}
