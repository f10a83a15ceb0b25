package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFetchFailed, cause, "failed to fetch")

	if err.Code != ErrCodeFetchFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFetchFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeFetchFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeFetchFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeFetchFailed,
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
	if code := GetCode(New(ErrCodeCanvasTooTall, "too tall")); code != ErrCodeCanvasTooTall {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodeCanvasTooTall)
	}

	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode() = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "structured error strips code prefix",
			err:      New(ErrCodeTooManyItems, "too many items: 51 (max 50)"),
			expected: "too many items: 51 (max 50)",
		},
		{
			name:     "internal error is opaque",
			err:      Wrap(ErrCodeInternal, errors.New("png encode: short write"), "encode failed"),
			expected: "internal rendering error",
		},
		{
			name:     "plain error passes through",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorClasses(t *testing.T) {
	safety := []Code{ErrCodeTooManyItems, ErrCodeCanvasTooTall, ErrCodeUnsafeResource, ErrCodeInvalidScheme}
	for _, code := range safety {
		if !IsClientSafety(New(code, "x")) {
			t.Errorf("IsClientSafety(%s) = false, want true", code)
		}
		if IsTransient(New(code, "x")) {
			t.Errorf("IsTransient(%s) = true, want false", code)
		}
	}

	transient := []Code{ErrCodeFetchFailed, ErrCodeDecodeFailed}
	for _, code := range transient {
		if !IsTransient(New(code, "x")) {
			t.Errorf("IsTransient(%s) = false, want true", code)
		}
		if IsClientSafety(New(code, "x")) {
			t.Errorf("IsClientSafety(%s) = true, want false", code)
		}
	}

	if IsClientSafety(New(ErrCodeInvalidInput, "x")) || IsTransient(New(ErrCodeInternal, "x")) {
		t.Error("validation and internal codes must not match either class")
	}
}
