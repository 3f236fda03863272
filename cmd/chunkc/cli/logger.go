// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// DebugEnvironmentVariable enables debug logging when set to any
// non-empty value.
const DebugEnvironmentVariable = "CHUNKC_DEBUG"

// NewCommandLogger creates the structured logger for a command run.
// When w is a terminal, uses slog.TextHandler for human-readable
// output; when piped or redirected (CI, build systems), uses
// slog.JSONHandler so log lines can be parsed.
func NewCommandLogger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv(DebugEnvironmentVariable) != "" {
		options.Level = slog.LevelDebug
	}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
