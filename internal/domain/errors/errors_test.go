package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid input", ErrInvalidInput},
		{"invalid cart", ErrInvalidCart},
		{"invalid upload", ErrInvalidUpload},
		{"invalid credentials", ErrInvalidCredentials},
		{"auth disabled", ErrAuthDisabled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", wrapped)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	if stdErrors.Is(ErrInvalidCart, ErrInvalidInput) {
		t.Fatal("cart error must not match generic input error")
	}
	if stdErrors.Is(ErrNotFound, ErrInvalidInput) {
		t.Fatal("not found must not match invalid input")
	}
}
