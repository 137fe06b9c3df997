package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func setupAuthMock(t *testing.T) (*PostgresAuthRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAuthRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs("alice", "Alice", []byte("hash")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateUser(context.Background(), "alice", "Alice", []byte("hash")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs("alice", "Alice", []byte("hash")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.CreateUser(context.Background(), "alice", "Alice", []byte("hash"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("error = %v; want ErrDuplicate", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPasswordHash_Found(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT password_hash FROM users WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow([]byte("hash")))

	hash, err := repo.PasswordHash(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(hash) != "hash" {
		t.Errorf("hash = %q; want hash", hash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPasswordHash_NotFound(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT password_hash FROM users WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}))

	_, err := repo.PasswordHash(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserRecord(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, name, created_at FROM users WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "created_at"}).
			AddRow("alice", "Alice", created))

	user, err := repo.UserRecord(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" || user.Name != "Alice" || !user.CreatedAt.Equal(created) {
		t.Errorf("user = %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateSessionAndResolve(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (token, username) VALUES ($1, $2)`)).
		WithArgs("tok", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username FROM sessions WHERE token = $1`)).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice"))

	if err := repo.CreateSession(context.Background(), "tok", "alice"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	username, err := repo.UsernameByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("UsernameByToken failed: %v", err)
	}
	if username != "alice" {
		t.Errorf("username = %q; want alice", username)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUsernameByToken_Unknown(t *testing.T) {
	repo, mock, cleanup := setupAuthMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username FROM sessions WHERE token = $1`)).
		WithArgs("bogus").
		WillReturnRows(sqlmock.NewRows([]string{"username"}))

	_, err := repo.UsernameByToken(context.Background(), "bogus")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
