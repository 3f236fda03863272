// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/chunkc/cmd/chunkc/cli"
	"github.com/bureau-foundation/chunkc/lib/build"
	"github.com/bureau-foundation/chunkc/lib/output"
	"github.com/bureau-foundation/chunkc/lib/unit"
	"github.com/bureau-foundation/chunkc/lib/verify"
)

// progressReporter prints verbose progress lines:
//
//	chunk=pkg/bar srcfile=pkg/bar.lua
//	  build/pkg/bar.luac (118 bytes)
//	    loaded pkg/bar as chunk pkg/bar (source, 42 bytes, 3f2a9c01b7d4)
type progressReporter struct {
	w io.Writer
}

func (r *progressReporter) UnitStarted(compileUnit unit.CompileUnit) {
	fmt.Fprintf(r.w, "chunk=%s srcfile=%s\n", compileUnit.ChunkName, compileUnit.SourcePath)
}

func (r *progressReporter) ArtifactWritten(_ unit.CompileUnit, written output.Written) {
	fmt.Fprintf(r.w, "  %s (%d bytes)\n", written.Path, written.Size)
}

func (r *progressReporter) ArtifactVerified(_ unit.CompileUnit, result verify.Result) {
	if result.Err != nil {
		fmt.Fprintf(r.w, "    %v\n", result.Err)
		return
	}
	fmt.Fprintf(r.w, "    loaded %s as %s\n", result.Identifier, result.Instance)
}

// renderSummary formats the one-line end-of-run summary.
func renderSummary(report *build.Report, styles cli.Styles) string {
	status := styles.Success.Render("ok")
	switch {
	case report.Failures() > 0:
		status = styles.Failure.Render("failed")
	case !report.Clean():
		status = styles.Warning.Render("warning")
	}

	parts := []string{
		fmt.Sprintf("%d/%d units compiled", report.Compiled, report.Units),
		fmt.Sprintf("%s artifacts written (%s)",
			humanize.Comma(int64(report.ArtifactsWritten)), humanize.Bytes(uint64(report.BytesWritten))),
	}
	if report.ArtifactsLoaded > 0 || len(report.LoadFailures) > 0 {
		parts = append(parts, fmt.Sprintf("%d loaded", report.ArtifactsLoaded))
	}
	if failures := report.Failures(); failures > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failures))
	}
	if len(report.Collisions) > 0 {
		parts = append(parts, fmt.Sprintf("%d chunk name collisions", len(report.Collisions)))
	}
	if report.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", report.Skipped))
	}

	elapsed := styles.Faint.Render("in " + report.Duration.Round(time.Millisecond).String())
	return fmt.Sprintf("%s: %s %s", status, strings.Join(parts, ", "), elapsed)
}
