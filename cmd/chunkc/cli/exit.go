// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Exit codes.
const (
	// ExitFailure covers run failures: no sources, configuration
	// errors, and strict-mode build failures.
	ExitFailure = 1

	// ExitUsage means the command line itself was wrong. The run
	// stopped before touching the filesystem.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command has already written its own output; Err,
// when set, keeps the cause available to errors.Is and errors.As.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface to
// distinguish "handled non-zero exit" from "unexpected error to
// display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
