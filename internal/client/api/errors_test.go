package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{400, CodeValidation},
		{401, CodeAuth},
		{403, CodeAuth},
		{409, CodeAuth},
		{404, CodeService},
		{422, CodeValidation},
		{500, CodeService},
	}
	for _, tt := range tests {
		if got := classify(tt.status, "m").Code; got != tt.want {
			t.Errorf("classify(%d) = %v; want %v", tt.status, got, tt.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrNetwork("request failed").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause")
	}
	if err.Error() != "request failed" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(ErrAuth("no token")); got != CodeAuth {
		t.Errorf("CodeOf = %v; want %v", got, CodeAuth)
	}
	// A wrapped *Error is still classified by its code.
	wrapped := fmt.Errorf("login: %w", ErrValidation("bad fields"))
	if got := CodeOf(wrapped); got != CodeValidation {
		t.Errorf("CodeOf(wrapped) = %v; want %v", got, CodeValidation)
	}
	if got := CodeOf(errors.New("plain")); got != CodeService {
		t.Errorf("CodeOf(plain) = %v; want %v", got, CodeService)
	}
}
