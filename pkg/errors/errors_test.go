package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeVersionNotFound, "no version of %s matches %q", "serde", "9")

	if err.Code != ErrCodeVersionNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeVersionNotFound)
	}

	if err.Message != `no version of serde matches "9"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `VERSION_NOT_FOUND: no version of serde matches "9"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeFetchFailure, cause, "fetch index")

	if err.Code != ErrCodeFetchFailure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFetchFailure)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "FETCH_FAILURE: fetch index: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeParseAmbiguous, "test"),
			code:     ErrCodeParseAmbiguous,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeParseAmbiguous, "test"),
			code:     ErrCodeFetchFailure,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeFetchFailure, New(ErrCodeInvalidPackage, "inner"), "outer"),
			code:     ErrCodeFetchFailure,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeFetchFailure, New(ErrCodeInvalidPackage, "inner"), "outer"),
			code:     ErrCodeInvalidPackage,
			expected: true,
		},
		{
			name:     "behind fmt wrapping",
			err:      fmt.Errorf("ctx: %w", New(ErrCodeVersionNotFound, "x")),
			code:     ErrCodeVersionNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidPackage, "test"), ErrCodeInvalidPackage},
		{"wrapped returns outer", Wrap(ErrCodeFetchFailure, New(ErrCodeInvalidPackage, "x"), "y"), ErrCodeFetchFailure},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
