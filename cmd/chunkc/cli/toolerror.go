// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so callers can decide how
// to react (fix the input, fix the environment, report a bug) without
// parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: missing arguments,
	// unknown flags, unparseable values. Fix the command line and
	// retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file or directory does
	// not exist or yielded nothing to do.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates an unexpected failure: I/O errors,
	// bugs.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error. It wraps an inner error,
// preserving the chain for errors.Is and errors.As. Use the
// constructors rather than building one directly.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying message; the category travels
// separately.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
