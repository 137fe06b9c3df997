// Package service provides the business logic of the development
// server, delegating persistence to repository interfaces.
package service

import "errors"

var (
	// ErrUserExists means the requested username is already taken.
	ErrUserExists = errors.New("username already taken")
	// ErrBadCredentials means the username/password pair did not match.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrInvalidToken means the presented token is unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNotFound means the referenced user or story does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the token's user may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput means a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
)
