package api

import "errors"

// Code classifies a client failure.
type Code string

const (
	// CodeNetwork means the request could not be sent or the response
	// could not be received.
	CodeNetwork Code = "Network"
	// CodeService means the service answered with a non-success status
	// outside the auth/validation cases, or with a body the client
	// could not decode.
	CodeService Code = "Service"
	// CodeAuth means invalid credentials, a missing/expired token, or
	// an identity conflict such as a taken username.
	CodeAuth Code = "Auth"
	// CodeValidation means the service rejected submitted fields.
	CodeValidation Code = "Validation"
	// CodeURLParse means a story URL could not be parsed during
	// host-name derivation.
	CodeURLParse Code = "URLParse"
)

// Error is a client failure with a taxonomy code and an optional cause.
type Error struct {
	Code  Code
	msg   string
	cause error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error and returns e.
func (e *Error) WithCause(c error) *Error {
	e.cause = c
	return e
}

func ErrNetwork(m string) *Error {
	return &Error{Code: CodeNetwork, msg: m}
}

func ErrService(m string) *Error {
	return &Error{Code: CodeService, msg: m}
}

func ErrAuth(m string) *Error {
	return &Error{Code: CodeAuth, msg: m}
}

func ErrValidation(m string) *Error {
	return &Error{Code: CodeValidation, msg: m}
}

func ErrURLParse(m string) *Error {
	return &Error{Code: CodeURLParse, msg: m}
}

// CodeOf returns the taxonomy code carried by err, or CodeService if
// err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeService
}

// classify maps a non-success HTTP status to the taxonomy.
func classify(status int, msg string) *Error {
	switch status {
	case 400, 422:
		return ErrValidation(msg)
	case 401, 403, 409:
		return ErrAuth(msg)
	default:
		return ErrService(msg)
	}
}
