package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/hackorsnooze/internal/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a violated
// uniqueness constraint.
const uniqueViolation = "23505"

// PostgresAuthRepository implements account and session persistence
// against a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser inserts a new account. Returns ErrDuplicate if the
// username is already taken.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, username, name string, passwordHash []byte) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3)`,
		username, name, passwordHash,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("CreateUser failed: %w", err)
	}
	return nil
}

// PasswordHash returns the stored password hash for the given username.
// Returns ErrNotFound if the account does not exist.
func (r *PostgresAuthRepository) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	var hash []byte
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("PasswordHash failed: %w", err)
	}
	return hash, nil
}

// UserRecord returns the base user record (no favorites or stories).
// Returns ErrNotFound if the account does not exist.
func (r *PostgresAuthRepository) UserRecord(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT username, name, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.Username, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("UserRecord failed: %w", err)
	}
	return u, nil
}

// CreateSession records a newly issued token for the user.
func (r *PostgresAuthRepository) CreateSession(ctx context.Context, token, username string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO sessions (token, username) VALUES ($1, $2)`,
		token, username,
	)
	if err != nil {
		return fmt.Errorf("CreateSession failed: %w", err)
	}
	return nil
}

// UsernameByToken resolves a session token to its username. Returns
// ErrNotFound for unknown or expired tokens.
func (r *PostgresAuthRepository) UsernameByToken(ctx context.Context, token string) (string, error) {
	var username string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT username FROM sessions WHERE token = $1`,
		token,
	).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("UsernameByToken failed: %w", err)
	}
	return username, nil
}
