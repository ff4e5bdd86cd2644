// Package errors defines error types shared by the provider adapters.
package errors

import (
	stdErrors "errors"
	"fmt"
	"time"
)

// RateLimitError reports that an upstream API throttled us.
type RateLimitError struct {
	Source     string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limited (retry after %s)", e.Source, e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limited", e.Source)
}

// NewRateLimitError creates a RateLimitError for the given source.
func NewRateLimitError(source string, retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{Source: source, RetryAfter: retryAfter}
}

// IsRateLimitError reports whether err is, or wraps, a RateLimitError.
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return stdErrors.As(err, &rle)
}
