// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the chunkc
// binary.
//
// A [Command] owns a pflag.FlagSet factory, help text, and a Run
// function. [Command.Execute] parses arguments, answers -h/--help,
// and turns flag errors into usage errors: the error and the usage
// text are printed to the command's stderr and an [ExitError] with
// [ExitUsage] is returned, wrapping a [CategoryValidation]
// [ToolError]. Unknown flags get a "did you mean" suggestion computed
// by edit distance against the defined flags.
//
// [NewCommandLogger] builds the slog logger every command uses:
// human-readable text on a terminal, JSON lines otherwise, and debug
// level when CHUNKC_DEBUG is set.
//
// [Theme] holds the colors for terminal summaries. Rendering goes
// through a lipgloss renderer bound to the destination writer, so
// redirected output carries no escape codes.
package cli
