// Package toolerr defines categorized errors returned by word lookups.
package toolerr

import (
	"errors"
	"fmt"
)

// Category classifies a tool error so callers can decide whether to fix
// their input, retry, or report the failure.
type Category string

const (
	// CategoryInvalidArgument means the request arguments were missing or
	// had the wrong shape.
	CategoryInvalidArgument Category = "invalid_argument"

	// CategoryResourceUnavailable means the word list could not be read.
	CategoryResourceUnavailable Category = "resource_unavailable"

	// CategoryInternal covers everything unexpected.
	CategoryInternal Category = "internal"
)

// ToolError wraps an error with its category. The category is not part of
// Error(); it travels separately in the tool result.
type ToolError struct {
	Category Category
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// InvalidArgument creates an invalid-argument error.
func InvalidArgument(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInvalidArgument, Err: fmt.Errorf(format, args...)}
}

// ResourceUnavailable creates a resource-unavailable error.
func ResourceUnavailable(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryResourceUnavailable, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf returns the category of the first ToolError in err's chain,
// or CategoryInternal when there is none. A nil error has no category.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Category
	}
	return CategoryInternal
}

// Retryable reports whether repeating the same call might succeed.
func Retryable(err error) bool {
	return CategoryOf(err) == CategoryResourceUnavailable
}
