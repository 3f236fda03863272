// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chunkc/cmd/chunkc/cli"
	"github.com/bureau-foundation/chunkc/lib/config"
)

// buildFlags are the command-line options. Values from a config file
// are overridden only by flags the user actually set.
type buildFlags struct {
	source       string
	dest         string
	packageName  string
	generateMain bool
	recursive    bool
	verifyLoad   bool
	encoding     string
	verbose      bool
	configPath   string
	jobs         int
	strict       bool
	version      bool
}

func rootCommand(ctx context.Context, stdout, stderr io.Writer) *cli.Command {
	var flags buildFlags
	defaults := config.Default()

	command := &cli.Command{
		Name:    "chunkc",
		Summary: "Compile Lua source trees into chunk artifacts",
		Description: `Compile Lua source files into chunk artifacts.

Each argument is a file or directory relative to the source root.
Directories are only searched with -r; each subdirectory adds a
segment to the package prefix. Artifacts are written under the
destination root as <package path>/<name>.luac.`,
		Usage: "chunkc [flags] <file-or-dir>...",
		Examples: []cli.Example{
			{
				Description: "Compile every .lua file under src into build",
				Command:     "chunkc -s src -d build -r .",
			},
			{
				Description: "Compile one file into package app, verify it loads, and report progress",
				Command:     "chunkc -p app -l -v main.lua",
			},
		},
		Stdout: stdout,
		Stderr: stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("chunkc", pflag.ContinueOnError)
			flagSet.SortFlags = false
			flagSet.StringVarP(&flags.source, "source", "s", defaults.Build.SourceRoot, "source root that arguments are relative to")
			flagSet.StringVarP(&flags.dest, "dest", "d", defaults.Build.DestRoot, "destination root for artifacts")
			flagSet.StringVarP(&flags.packageName, "package", "p", "", "dotted package prefix for all units")
			flagSet.BoolVarP(&flags.generateMain, "main", "m", false, "also generate an entry-point artifact per unit")
			flagSet.BoolVarP(&flags.recursive, "recursive", "r", false, "recurse into directories")
			flagSet.BoolVarP(&flags.verifyLoad, "load", "l", false, "verify artifacts by loading them in memory")
			flagSet.StringVarP(&flags.encoding, "encoding", "c", "", "text encoding of source files (e.g. ISO-8859-1)")
			flagSet.BoolVarP(&flags.verbose, "verbose", "v", false, "print progress to stdout")
			flagSet.StringVar(&flags.configPath, "config", "", "YAML or JSONC config file (default $"+config.EnvironmentVariable+")")
			flagSet.IntVar(&flags.jobs, "jobs", defaults.Build.Jobs, "number of units to compile in parallel")
			flagSet.BoolVar(&flags.strict, "strict", false, "exit 1 if any unit or artifact fails or chunk names collide")
			flagSet.BoolVar(&flags.version, "version", false, "print version and exit")
			return flagSet
		},
	}
	command.Run = func(args []string, flagSet *pflag.FlagSet) error {
		return runBuild(ctx, command, &flags, flagSet, args)
	}
	return command
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cfg *config.Config, flags *buildFlags, flagSet *pflag.FlagSet) {
	changed := flagSet.Changed
	if changed("source") {
		cfg.Build.SourceRoot = flags.source
	}
	if changed("dest") {
		cfg.Build.DestRoot = flags.dest
	}
	if changed("package") {
		cfg.Build.PackagePrefix = flags.packageName
	}
	if changed("main") {
		cfg.Build.GenerateMain = flags.generateMain
	}
	if changed("recursive") {
		cfg.Build.Recursive = flags.recursive
	}
	if changed("load") {
		cfg.Build.VerifyLoad = flags.verifyLoad
	}
	if changed("encoding") {
		cfg.Build.Encoding = flags.encoding
	}
	if changed("verbose") {
		cfg.Build.Verbose = flags.verbose
	}
	if changed("jobs") {
		cfg.Build.Jobs = flags.jobs
	}
	if changed("strict") {
		cfg.Build.Strict = flags.strict
	}
}
