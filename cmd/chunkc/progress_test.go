// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/chunkc/cmd/chunkc/cli"
	"github.com/bureau-foundation/chunkc/lib/build"
	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/output"
	"github.com/bureau-foundation/chunkc/lib/unit"
	"github.com/bureau-foundation/chunkc/lib/verify"
)

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		name   string
		report build.Report
		want   string
	}{
		{
			name: "clean",
			report: build.Report{
				Units: 3, Compiled: 3, ArtifactsWritten: 1200, BytesWritten: 2_500_000,
				Duration: 1234567 * time.Microsecond,
			},
			want: "ok: 3/3 units compiled, 1,200 artifacts written (2.5 MB) in 1.235s",
		},
		{
			name: "failures and loads",
			report: build.Report{
				Units: 2, Compiled: 1, ArtifactsWritten: 1, BytesWritten: 100, ArtifactsLoaded: 1,
				CompileFailures: []*compiler.CompileError{{Err: errors.New("boom")}},
			},
			want: "failed: 1/2 units compiled, 1 artifacts written (100 B), 1 loaded, 1 failed in 0s",
		},
		{
			name: "collisions and skips",
			report: build.Report{
				Units: 4, Compiled: 2, Skipped: 1,
				Collisions: []unit.Collision{{ChunkName: "a"}},
			},
			want: "warning: 2/4 units compiled, 0 artifacts written (0 B), 1 chunk name collisions, 1 skipped in 0s",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			styled := renderSummary(&test.report, cli.DefaultTheme.StylesWithProfile(&buffer, termenv.ANSI256))
			if !strings.Contains(styled, "\x1b[") {
				t.Errorf("summary %q has no color with an ANSI256 profile", styled)
			}
			if got := ansi.Strip(styled); got != test.want {
				t.Errorf("summary = %q, want %q", got, test.want)
			}
		})
	}
}

func TestRenderSummary_PlainForPipes(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	var buffer bytes.Buffer
	report := build.Report{Units: 1, Compiled: 1}
	got := renderSummary(&report, cli.DefaultTheme.StylesFor(&buffer))
	if strings.Contains(got, "\x1b[") {
		t.Errorf("summary %q carries escape codes for a non-terminal writer", got)
	}
}

func TestProgressReporter(t *testing.T) {
	var buffer bytes.Buffer
	reporter := &progressReporter{w: &buffer}
	compileUnit := unit.CompileUnit{ChunkName: "pkg/bar", SourcePath: "pkg/bar.lua"}

	reporter.UnitStarted(compileUnit)
	reporter.ArtifactWritten(compileUnit, output.Written{Identifier: "pkg/bar", Path: "build/pkg/bar.luac", Size: 118})
	reporter.ArtifactVerified(compileUnit, verify.Result{
		Identifier: "pkg/bar",
		Err:        &verify.LoadError{Identifier: "pkg/bar", Err: errors.New("bad magic")},
	})

	want := "chunk=pkg/bar srcfile=pkg/bar.lua\n" +
		"  build/pkg/bar.luac (118 bytes)\n" +
		"    failed to load pkg/bar: bad magic\n"
	if buffer.String() != want {
		t.Errorf("output = %q, want %q", buffer.String(), want)
	}
}
