// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit status
// (cli.ExitError). Those errors have already produced their output.
type exitCoder interface {
	ExitCode() int
}

// Status returns the exit status for err and writes "error: err" to
// stderr unless err carries its own exit code. A nil error is status 0.
func Status(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

// Exit terminates the process with the status [Status] computes for
// err. Call it once, at the end of main.
func Exit(err error) {
	os.Exit(Status(err, os.Stderr))
}
