package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("Google Books", 0)

	if err.Error() != "Google Books rate limited" {
		t.Fatalf("Error message = %q", err.Error())
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := fmt.Errorf("search failed: %w", err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestRateLimitErrorWithRetryAfter(t *testing.T) {
	err := NewRateLimitError("Open Library", 2*time.Minute)

	expected := "Open Library rate limited (retry after 2m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if err.RetryAfter.Minutes() != 2.0 {
		t.Fatalf("RetryAfter = %v, want 2 minutes", err.RetryAfter)
	}
}

func TestIsRateLimitErrorOtherError(t *testing.T) {
	if IsRateLimitError(stdErrors.New("boom")) {
		t.Fatalf("IsRateLimitError returned true for unrelated error")
	}
}
