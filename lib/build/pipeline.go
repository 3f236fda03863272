// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/chunkc/lib/clock"
	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/output"
	"github.com/bureau-foundation/chunkc/lib/unit"
	"github.com/bureau-foundation/chunkc/lib/verify"
)

// UnitCompiler compiles one unit. *compiler.Driver implements it.
type UnitCompiler interface {
	Compile(ctx context.Context, compileUnit unit.CompileUnit) (unit.ArtifactSet, error)
}

// Pipeline holds everything needed to process units. Fields are read
// only during Run.
type Pipeline struct {
	Compiler UnitCompiler
	Writer   *output.Writer

	// Verify enables in-memory verification through Platform, with
	// Fallback resolving names outside each unit's artifact set.
	Verify   bool
	Platform verify.Platform
	Fallback verify.Resolver

	// Jobs is the maximum number of units processed at once. Values
	// below 1 mean 1.
	Jobs int

	Reporter Reporter
	Logger   *slog.Logger
	Clock    clock.Clock
}

// outcome is everything one unit produced, held until it can be
// reported in order.
type outcome struct {
	unit       unit.CompileUnit
	started    bool
	compileErr error
	written    []output.Written
	writeErr   error
	results    []verify.Result
}

// Run processes units and returns the report. It never returns early
// because of a unit failure.
func (p *Pipeline) Run(ctx context.Context, units []unit.CompileUnit) Report {
	reporter := p.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	wallClock := p.Clock
	if wallClock == nil {
		wallClock = clock.Real()
	}
	jobs := max(p.Jobs, 1)

	start := wallClock.Now()
	report := Report{Units: len(units), Collisions: unit.DetectCollisions(units)}
	for _, collision := range report.Collisions {
		logger.Warn("chunk name produced by more than one source file",
			"chunk", collision.ChunkName,
			"sources", collision.SourceFiles,
		)
	}

	// Units sharing a chunk name write the same artifact paths. Each
	// waits for its predecessor's write so the last unit in discovery
	// order is the one left on disk.
	writeDone := make([]chan struct{}, len(units))
	predecessor := make([]int, len(units))
	lastByChunk := make(map[string]int, len(units))
	for index, compileUnit := range units {
		writeDone[index] = make(chan struct{})
		predecessor[index] = -1
		if previous, ok := lastByChunk[compileUnit.ChunkName]; ok {
			predecessor[index] = previous
		}
		lastByChunk[compileUnit.ChunkName] = index
	}

	outcomes := make([]*outcome, len(units))
	var (
		mutex    sync.Mutex
		reported int
	)
	// flush reports every finished outcome that has no unfinished
	// predecessor. Callers hold mutex.
	flush := func() {
		for reported < len(outcomes) && outcomes[reported] != nil {
			p.record(&report, outcomes[reported], reporter, logger)
			reported++
		}
	}

	var group errgroup.Group
	group.SetLimit(jobs)
	for index, compileUnit := range units {
		index, compileUnit := index, compileUnit
		if ctx.Err() != nil {
			mutex.Lock()
			for skipped := index; skipped < len(units); skipped++ {
				outcomes[skipped] = &outcome{unit: units[skipped]}
			}
			flush()
			mutex.Unlock()
			break
		}
		var waitFor <-chan struct{}
		if previous := predecessor[index]; previous >= 0 {
			waitFor = writeDone[previous]
		}
		group.Go(func() error {
			defer close(writeDone[index])
			result := &outcome{unit: compileUnit}
			// Cancellation may arrive while Go waits for a free slot.
			if ctx.Err() == nil {
				result = p.process(ctx, compileUnit, waitFor)
			}
			mutex.Lock()
			outcomes[index] = result
			flush()
			mutex.Unlock()
			return nil
		})
	}
	group.Wait()

	if report.Skipped > 0 {
		logger.Warn("build interrupted", "skipped", report.Skipped, "error", ctx.Err())
	}
	report.Duration = clock.Since(wallClock, start)
	return report
}

// process runs one unit through compile, write, and verify. The
// write starts only after waitFor, if non-nil, is closed.
func (p *Pipeline) process(ctx context.Context, compileUnit unit.CompileUnit, waitFor <-chan struct{}) *outcome {
	result := &outcome{unit: compileUnit, started: true}

	artifacts, err := p.Compiler.Compile(ctx, compileUnit)
	if err != nil {
		result.compileErr = err
		return result
	}

	if waitFor != nil {
		<-waitFor
	}
	result.written, result.writeErr = p.Writer.Write(artifacts)

	if p.Verify {
		result.results = verify.Verify(artifacts, p.Platform, p.Fallback)
	}
	return result
}

// record emits a unit's events and folds it into the report.
func (p *Pipeline) record(report *Report, result *outcome, reporter Reporter, logger *slog.Logger) {
	compileUnit := result.unit
	if !result.started {
		report.Skipped++
		return
	}

	reporter.UnitStarted(compileUnit)

	if result.compileErr != nil {
		logger.Error("compile failed",
			"chunk", compileUnit.ChunkName,
			"source", compileUnit.SourcePath,
			"error", result.compileErr,
		)
		var compileError *compiler.CompileError
		if !errors.As(result.compileErr, &compileError) {
			compileError = &compiler.CompileError{Unit: compileUnit, Err: result.compileErr}
		}
		report.CompileFailures = append(report.CompileFailures, compileError)
		return
	}
	report.Compiled++

	for _, written := range result.written {
		reporter.ArtifactWritten(compileUnit, written)
		report.ArtifactsWritten++
		report.BytesWritten += int64(written.Size)
	}
	for _, writeError := range writeErrors(result.writeErr) {
		logger.Error("write failed",
			"chunk", compileUnit.ChunkName,
			"source", compileUnit.SourcePath,
			"artifact", writeError.Identifier,
			"error", writeError.Err,
		)
		report.WriteFailures = append(report.WriteFailures, writeError)
	}

	failed := verify.Failed(result.results)
	report.ArtifactsLoaded += len(result.results) - failed
	if len(result.results) > 0 {
		logger.Debug("verified artifacts",
			"chunk", compileUnit.ChunkName,
			"loaded", len(result.results)-failed,
			"failed", failed,
		)
	}
	for _, verified := range result.results {
		reporter.ArtifactVerified(compileUnit, verified)
		if verified.Err == nil {
			continue
		}
		var loadError *verify.LoadError
		if !errors.As(verified.Err, &loadError) {
			loadError = &verify.LoadError{Identifier: verified.Identifier, Err: verified.Err}
		}
		logger.Error("load failed",
			"chunk", compileUnit.ChunkName,
			"source", compileUnit.SourcePath,
			"artifact", loadError.Identifier,
			"error", loadError.Err,
		)
		report.LoadFailures = append(report.LoadFailures, loadError)
	}
}

// writeErrors flattens the joined error returned by output.Writer.
func writeErrors(err error) []*output.WriteError {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	flattened := make([]*output.WriteError, 0, len(errs))
	for _, each := range errs {
		var writeError *output.WriteError
		if !errors.As(each, &writeError) {
			writeError = &output.WriteError{Err: each}
		}
		flattened = append(flattened, writeError)
	}
	return flattened
}
