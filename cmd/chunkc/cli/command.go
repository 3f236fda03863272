// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Command is a CLI command.
type Command struct {
	// Name is the command name as typed by the user.
	Name string

	// Summary is a one-line description.
	Summary string

	// Description is shown at the top of the help output.
	Description string

	// Usage is the usage line. If empty, "<name> [flags]" is used.
	Usage string

	// Examples are shown after the flags in help output.
	Examples []Example

	// Flags returns a configured FlagSet. Called on every Execute and
	// PrintHelp, so flag variables bound inside it are fresh each
	// time. If nil, the command accepts no flags.
	Flags func() *pflag.FlagSet

	// Run executes the command with the positional arguments and the
	// parsed FlagSet, which reports which flags were set explicitly.
	Run func(args []string, flags *pflag.FlagSet) error

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute parses args and calls Run. Help requests print help to
// stdout and return nil. Flag errors print the error and usage to
// stderr and return an ExitError with ExitUsage.
func (c *Command) Execute(args []string) error {
	flagSet := c.flagSet()
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		message := err.Error()
		if strings.Contains(message, "unknown flag") {
			if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
				message = fmt.Sprintf("%s (did you mean %s?)", message, suggestion)
			}
		}
		return c.UsageError("%s", message)
	}

	if help, _ := flagSet.GetBool("help"); help {
		c.PrintHelp(c.stdout())
		return nil
	}
	if c.Run == nil {
		return fmt.Errorf("%s: no action defined", c.Name)
	}
	return c.Run(flagSet.Args(), flagSet)
}

// UsageError prints "error: <message>" and the usage text to stderr
// and returns the matching ExitError. Run functions call it for
// argument problems found after flag parsing.
func (c *Command) UsageError(format string, args ...any) error {
	validation := Validation(format, args...)
	stderr := c.stderr()
	fmt.Fprintf(stderr, "error: %v\n\n", validation)
	c.printUsage(stderr)
	return &ExitError{Code: ExitUsage, Err: validation}
}

// PrintHelp writes the full help text to w.
func (c *Command) PrintHelp(w io.Writer) {
	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}
	c.printUsage(w)

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}
}

// printUsage writes the usage line and the flag table.
func (c *Command) printUsage(w io.Writer) {
	if c.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	} else {
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", c.Name)
	}
	if flagUsages := c.flagSet().FlagUsages(); flagUsages != "" {
		fmt.Fprintf(w, "\nFlags:\n%s", flagUsages)
	}
}

func (c *Command) flagSet() *pflag.FlagSet {
	var flagSet *pflag.FlagSet
	if c.Flags != nil {
		flagSet = c.Flags()
	} else {
		flagSet = pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	}
	if flagSet.Lookup("help") == nil {
		flagSet.BoolP("help", "h", false, "show help")
	}
	return flagSet
}

func (c *Command) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Command) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}
