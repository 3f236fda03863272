// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Build.SourceRoot != "." || cfg.Build.DestRoot != "." {
		t.Errorf("expected roots=., got %q and %q", cfg.Build.SourceRoot, cfg.Build.DestRoot)
	}
	if cfg.Build.SourceExtension != ".lua" || cfg.Build.ArtifactExtension != ".luac" {
		t.Errorf("expected extensions .lua/.luac, got %s/%s", cfg.Build.SourceExtension, cfg.Build.ArtifactExtension)
	}
	if cfg.Build.Jobs != 1 {
		t.Errorf("expected jobs=1, got %d", cfg.Build.Jobs)
	}
	if cfg.Build.Recursive || cfg.Build.VerifyLoad || cfg.Build.Strict {
		t.Error("expected boolean options to default to false")
	}
	if cfg.Compiler.Kind != CompilerBundle {
		t.Errorf("expected compiler kind=bundle, got %s", cfg.Compiler.Kind)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutVariableReturnsDefault(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Build.Jobs != 1 || cfg.Compiler.Kind != CompilerBundle {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoad_WithVariable(t *testing.T) {
	path := writeConfig(t, "chunkc.yaml", `
build:
  source_root: /work/src
  recursive: true
  jobs: 4
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Build.SourceRoot != "/work/src" || !cfg.Build.Recursive || cfg.Build.Jobs != 4 {
		t.Errorf("file values not applied: %+v", cfg.Build)
	}
	if cfg.Build.DestRoot != "." {
		t.Errorf("unset dest_root should keep default, got %q", cfg.Build.DestRoot)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, "chunkc.yaml", `
build:
  dest_root: /out
  package: app.core
  encoding: ISO-8859-1
  generate_main: true
  verify_load: true
  artifact_extension: .chunk
  strict: true
compiler:
  kind: exec
  command: [luac-wrapper, --emit]
  timeout: 30s
runtime:
  platform: embedded
  language_version: "5.3"
  libraries: [utf8, socket]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Build.PackagePrefix != "app.core" || cfg.Build.Encoding != "ISO-8859-1" {
		t.Errorf("build section = %+v", cfg.Build)
	}
	if !cfg.Build.GenerateMain || !cfg.Build.VerifyLoad || !cfg.Build.Strict {
		t.Errorf("boolean build options not applied: %+v", cfg.Build)
	}
	if !slices.Equal(cfg.Compiler.Command, []string{"luac-wrapper", "--emit"}) {
		t.Errorf("compiler.command = %v", cfg.Compiler.Command)
	}
	if timeout, err := cfg.Compiler.TimeoutDuration(); err != nil || timeout != 30*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v; want 30s", timeout, err)
	}

	env := cfg.Environment()
	if env.Platform() != "embedded" || env.LanguageVersion() != "5.3" {
		t.Errorf("environment = %s %s", env.Platform(), env.LanguageVersion())
	}
	for _, library := range []string{"string", "utf8", "socket"} {
		if !env.Has(library) {
			t.Errorf("environment missing library %q", library)
		}
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "chunkc.jsonc", `{
  // Build everything under src.
  "build": {
    "source_root": "src",
    "recursive": true,
  },
  "compiler": {"compression": "zstd"},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Build.SourceRoot != "src" || !cfg.Build.Recursive {
		t.Errorf("build section = %+v", cfg.Build)
	}
	if cfg.Compiler.Compression != "zstd" || cfg.Compiler.Kind != CompilerBundle {
		t.Errorf("compiler section = %+v", cfg.Compiler)
	}
}

func TestLoadFile_UnknownKeysRejected(t *testing.T) {
	for name, content := range map[string]string{
		"typo.yaml": "build:\n  recursve: true\n",
		"typo.json": `{"build": {"recursve": true}}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, name, content)); err == nil {
				t.Error("expected error for unknown key")
			}
		})
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("LoadFile() of empty file failed: %v", err)
	}
	if cfg.Build.Jobs != 1 {
		t.Errorf("expected defaults from empty file, got jobs=%d", cfg.Build.Jobs)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "absent.yaml") {
		t.Errorf("expected error naming the file, got %v", err)
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("CHUNKC_TEST_OUT", "")
	path := writeConfig(t, "chunkc.yaml", `
build:
  source_root: ${HOME}/project/src
  dest_root: ${CHUNKC_TEST_OUT:-/tmp/build}
compiler:
  kind: exec
  command: ["${HOME}/bin/compile", "--root=${CHUNKC_SOURCE_ROOT}"]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Build.SourceRoot != "/home/tester/project/src" {
		t.Errorf("source_root = %q", cfg.Build.SourceRoot)
	}
	if cfg.Build.DestRoot != "/tmp/build" {
		t.Errorf("dest_root = %q, want the default from the pattern", cfg.Build.DestRoot)
	}
	if got := cfg.Compiler.Command; got[0] != "/home/tester/bin/compile" || got[1] != "--root=/home/tester/project/src" {
		t.Errorf("command = %v", got)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("CHUNKC_TEST_SET", "from-env")
	t.Setenv("CHUNKC_TEST_EMPTY", "")
	vars := map[string]string{"LOCAL": "from-vars"}

	tests := []struct {
		input string
		want  string
	}{
		{"${LOCAL}/x", "from-vars/x"},
		{"${CHUNKC_TEST_SET}", "from-env"},
		{"${CHUNKC_TEST_EMPTY:-fallback}", "fallback"},
		{"${CHUNKC_TEST_UNSET_VARIABLE}", ""},
		{"no variables", "no variables"},
	}
	for _, tt := range tests {
		if got := expandVars(tt.input, vars); got != tt.want {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad package", func(c *Config) { c.Build.PackagePrefix = "a..b" }, "build.package"},
		{"bad extension", func(c *Config) { c.Build.SourceExtension = "lua" }, "build.source_extension"},
		{"zero jobs", func(c *Config) { c.Build.Jobs = 0 }, "build.jobs"},
		{"unknown compiler", func(c *Config) { c.Compiler.Kind = "jit" }, "compiler.kind"},
		{"exec without command", func(c *Config) { c.Compiler.Kind = CompilerExec }, "compiler.command"},
		{"bad timeout", func(c *Config) { c.Compiler.Timeout = "soon" }, "compiler.timeout"},
		{"bad compression", func(c *Config) { c.Compiler.Compression = "gzip" }, "compiler.compression"},
		{"no platform", func(c *Config) { c.Runtime.Platform = "" }, "runtime.platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Build.Jobs = 0
	cfg.Compiler.Kind = "jit"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "build.jobs") || !strings.Contains(err.Error(), "compiler.kind") {
		t.Errorf("Validate() = %v, want both problems", err)
	}
}
