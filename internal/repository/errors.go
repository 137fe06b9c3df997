// Package repository provides PostgreSQL persistence for the
// development server.
package repository

import "errors"

var (
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint, e.g. registering a taken username.
	ErrDuplicate = errors.New("already exists")
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
)
