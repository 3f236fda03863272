// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/chunkc/lib/chunkfile"
	"github.com/bureau-foundation/chunkc/lib/environment"
	"github.com/bureau-foundation/chunkc/lib/unit"
)

// EnvironmentVariable names the variable Load reads.
const EnvironmentVariable = "CHUNKC_CONFIG"

// Compiler kinds.
const (
	CompilerBundle = "bundle"
	CompilerExec   = "exec"
)

// Config is the complete chunkc configuration. It is built once at
// startup and not modified after the build starts.
type Config struct {
	Build    BuildConfig    `yaml:"build" json:"build"`
	Compiler CompilerConfig `yaml:"compiler" json:"compiler"`
	Runtime  RuntimeConfig  `yaml:"runtime" json:"runtime"`
}

// BuildConfig controls discovery, naming, output, and verification.
type BuildConfig struct {
	// SourceRoot is the directory seeds are resolved against.
	// Default: "."
	SourceRoot string `yaml:"source_root" json:"source_root"`

	// DestRoot is the directory artifacts are written under.
	// Default: "."
	DestRoot string `yaml:"dest_root" json:"dest_root"`

	// PackagePrefix is the dotted namespace applied to every seed.
	PackagePrefix string `yaml:"package" json:"package"`

	Recursive bool `yaml:"recursive" json:"recursive"`

	// Encoding names the text encoding of source files. Empty means
	// sources are passed to the compiler as raw bytes.
	Encoding string `yaml:"encoding" json:"encoding"`

	GenerateMain bool `yaml:"generate_main" json:"generate_main"`
	Verbose      bool `yaml:"verbose" json:"verbose"`
	VerifyLoad   bool `yaml:"verify_load" json:"verify_load"`

	// SourceExtension selects source files. Default: ".lua"
	SourceExtension string `yaml:"source_extension" json:"source_extension"`

	// ArtifactExtension is appended to artifact identifiers.
	// Default: ".luac"
	ArtifactExtension string `yaml:"artifact_extension" json:"artifact_extension"`

	// Jobs is the number of units compiled concurrently. Default: 1
	Jobs int `yaml:"jobs" json:"jobs"`

	// Strict makes any unit failure or chunk name collision fail the
	// run.
	Strict bool `yaml:"strict" json:"strict"`
}

// CompilerConfig selects and configures the compiler.
type CompilerConfig struct {
	// Kind is "bundle" (built in) or "exec". Default: bundle
	Kind string `yaml:"kind" json:"kind"`

	// Command is the exec compiler's program and arguments.
	Command []string `yaml:"command" json:"command"`

	// Env is added to the exec compiler's environment, as KEY=VALUE.
	Env []string `yaml:"env" json:"env"`

	// Timeout bounds each exec invocation, in time.ParseDuration
	// syntax. Default: 1m
	Timeout string `yaml:"timeout" json:"timeout"`

	// Compression is the bundle payload compression: auto, none,
	// lz4, or zstd. Default: auto
	Compression string `yaml:"compression" json:"compression"`
}

// RuntimeConfig describes the target environment.
type RuntimeConfig struct {
	Platform        string `yaml:"platform" json:"platform"`
	LanguageVersion string `yaml:"language_version" json:"language_version"`

	// Libraries are preinstalled in addition to the standard set.
	Libraries []string `yaml:"libraries" json:"libraries"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			SourceRoot:        ".",
			DestRoot:          ".",
			SourceExtension:   ".lua",
			ArtifactExtension: ".luac",
			Jobs:              1,
		},
		Compiler: CompilerConfig{
			Kind:        CompilerBundle,
			Timeout:     "1m",
			Compression: "auto",
		},
		Runtime: RuntimeConfig{
			Platform:        environment.DefaultPlatform,
			LanguageVersion: environment.DefaultLanguageVersion,
		},
	}
}

// Load loads the file named by CHUNKC_CONFIG, or returns Default if
// the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path on top of Default, expands
// variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges the file at path into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields and the exec command.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Build.SourceRoot = expandVars(c.Build.SourceRoot, vars)
	vars["CHUNKC_SOURCE_ROOT"] = c.Build.SourceRoot

	c.Build.DestRoot = expandVars(c.Build.DestRoot, vars)
	for i, argument := range c.Compiler.Command {
		c.Compiler.Command[i] = expandVars(argument, vars)
	}
	for i, entry := range c.Compiler.Env {
		c.Compiler.Env[i] = expandVars(entry, vars)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces each ${NAME} or ${NAME:-default} in s. vars
// take precedence over the process environment; empty values fall
// through to the default.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Build.SourceRoot == "" {
		errs = append(errs, errors.New("build.source_root is required"))
	}
	if c.Build.DestRoot == "" {
		errs = append(errs, errors.New("build.dest_root is required"))
	}
	if c.Build.PackagePrefix != "" {
		if err := unit.ValidatePrefix(c.Build.PackagePrefix); err != nil {
			errs = append(errs, fmt.Errorf("build.package: %w", err))
		}
	}
	if !strings.HasPrefix(c.Build.SourceExtension, ".") || len(c.Build.SourceExtension) < 2 {
		errs = append(errs, fmt.Errorf("build.source_extension %q must start with a dot", c.Build.SourceExtension))
	}
	if !strings.HasPrefix(c.Build.ArtifactExtension, ".") || len(c.Build.ArtifactExtension) < 2 {
		errs = append(errs, fmt.Errorf("build.artifact_extension %q must start with a dot", c.Build.ArtifactExtension))
	}
	if c.Build.Jobs < 1 {
		errs = append(errs, fmt.Errorf("build.jobs must be at least 1, got %d", c.Build.Jobs))
	}

	switch c.Compiler.Kind {
	case CompilerBundle:
	case CompilerExec:
		if len(c.Compiler.Command) == 0 {
			errs = append(errs, errors.New("compiler.command is required when compiler.kind is exec"))
		}
	default:
		errs = append(errs, fmt.Errorf("compiler.kind must be %q or %q, got %q", CompilerBundle, CompilerExec, c.Compiler.Kind))
	}
	if _, err := c.Compiler.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := chunkfile.ParseCompression(c.Compiler.Compression); err != nil {
		errs = append(errs, fmt.Errorf("compiler.compression: %w", err))
	}

	if c.Runtime.Platform == "" {
		errs = append(errs, errors.New("runtime.platform is required"))
	}
	if c.Runtime.LanguageVersion == "" {
		errs = append(errs, errors.New("runtime.language_version is required"))
	}

	return errors.Join(errs...)
}

// TimeoutDuration parses Timeout. Empty means zero, which the exec
// compiler replaces with its default.
func (c CompilerConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("compiler.timeout: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("compiler.timeout must not be negative, got %s", c.Timeout)
	}
	return timeout, nil
}

// Environment builds the target environment: the standard libraries
// plus Runtime.Libraries, under the configured platform and version.
func (c *Config) Environment() *environment.Environment {
	standard := environment.Standard()
	return environment.New(c.Runtime.Platform, c.Runtime.LanguageVersion, standard.Libraries()).
		WithLibraries(c.Runtime.Libraries...)
}
