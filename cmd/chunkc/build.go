// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chunkc/cmd/chunkc/cli"
	"github.com/bureau-foundation/chunkc/lib/build"
	"github.com/bureau-foundation/chunkc/lib/chunkfile"
	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/compiler/bundle"
	"github.com/bureau-foundation/chunkc/lib/compiler/execplugin"
	"github.com/bureau-foundation/chunkc/lib/config"
	"github.com/bureau-foundation/chunkc/lib/discovery"
	"github.com/bureau-foundation/chunkc/lib/environment"
	"github.com/bureau-foundation/chunkc/lib/output"
	"github.com/bureau-foundation/chunkc/lib/verify"
	"github.com/bureau-foundation/chunkc/lib/version"
)

func runBuild(ctx context.Context, command *cli.Command, flags *buildFlags, flagSet *pflag.FlagSet, seeds []string) error {
	if flags.version {
		version.Fprint(command.Stdout, "chunkc")
		return nil
	}
	if len(seeds) == 0 {
		return command.UsageError("no input files or directories given")
	}

	cfg, err := loadConfig(flags, flagSet)
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger(command.Stderr).With("command", "chunkc")
	stdout := command.Stdout

	if cfg.Build.Verbose {
		version.Fprint(stdout, "chunkc")
		fmt.Fprintf(stdout, "srcdir: %s\n", cfg.Build.SourceRoot)
		fmt.Fprintf(stdout, "destdir: %s\n", cfg.Build.DestRoot)
		fmt.Fprintf(stdout, "files: %v\n", seeds)
		fmt.Fprintf(stdout, "recurse: %t\n", cfg.Build.Recursive)
	}

	units, err := discovery.Collect(seeds, discovery.Options{
		SourceRoot:    cfg.Build.SourceRoot,
		DestRoot:      cfg.Build.DestRoot,
		PackagePrefix: cfg.Build.PackagePrefix,
		Recursive:     cfg.Build.Recursive,
		Extension:     cfg.Build.SourceExtension,
		Logger:        logger,
	})
	if errors.Is(err, discovery.ErrNoSources) {
		return cli.NotFound("%w", err)
	}
	if err != nil {
		return cli.Internal("discovering sources: %w", err)
	}
	logger.Debug("discovered units", "count", len(units))

	env := cfg.Environment()
	unitCompiler, err := newCompiler(cfg, env, logger)
	if err != nil {
		return err
	}
	fallback, err := verify.NewRuntimeResolver(env, verify.DefaultCacheSize)
	if err != nil {
		return cli.Internal("%w", err)
	}

	var reporter build.Reporter = build.NopReporter{}
	if cfg.Build.Verbose {
		reporter = &progressReporter{w: stdout}
	}

	pipeline := &build.Pipeline{
		Compiler: compiler.NewDriver(compiler.DriverOptions{
			Compiler:     unitCompiler,
			Environment:  env,
			Encoding:     cfg.Build.Encoding,
			GenerateMain: cfg.Build.GenerateMain,
			Logger:       logger,
		}),
		Writer:   &output.Writer{DestRoot: cfg.Build.DestRoot, Extension: cfg.Build.ArtifactExtension},
		Verify:   cfg.Build.VerifyLoad,
		Platform: verify.ChunkPlatform{},
		Fallback: fallback,
		Jobs:     cfg.Build.Jobs,
		Reporter: reporter,
		Logger:   logger,
	}
	report := pipeline.Run(ctx, units)

	if cfg.Build.Verbose {
		fmt.Fprintln(stdout, renderSummary(&report, cli.DefaultTheme.StylesFor(stdout)))
	}

	if report.Skipped > 0 {
		return fmt.Errorf("interrupted: %d of %d units not started", report.Skipped, report.Units)
	}
	if cfg.Build.Strict && !report.Clean() {
		return fmt.Errorf("build failed: %d compile, %d write, %d load failures, %d chunk name collisions",
			len(report.CompileFailures), len(report.WriteFailures), len(report.LoadFailures), len(report.Collisions))
	}
	return nil
}

// loadConfig reads the config file, if any, and applies flag
// overrides. Errors are configuration errors (exit 1).
func loadConfig(flags *buildFlags, flagSet *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagSet.Changed("config") {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyFlags(cfg, flags, flagSet)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newCompiler builds the compiler the configuration selects.
func newCompiler(cfg *config.Config, env *environment.Environment, logger *slog.Logger) (compiler.Compiler, error) {
	switch cfg.Compiler.Kind {
	case config.CompilerExec:
		timeout, err := cfg.Compiler.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		return execplugin.New(execplugin.Options{
			Command: cfg.Compiler.Command,
			Env:     cfg.Compiler.Env,
			Timeout: timeout,
			Logger:  logger,
		})
	default:
		compression, err := chunkfile.ParseCompression(cfg.Compiler.Compression)
		if err != nil {
			return nil, err
		}
		logger.Debug("using bundle compiler",
			"compression", compression.String(),
			"platform", env.Platform(),
			"language_version", env.LanguageVersion(),
		)
		return bundle.New(bundle.Options{Compression: compression}), nil
	}
}
