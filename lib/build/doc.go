// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package build runs discovered compile units through the per-unit
// pipeline: compile, write, and optionally verify.
//
// Units are independent. A unit whose compilation fails is skipped; a
// failed artifact write or load is recorded and the rest of the unit
// still proceeds. None of these failures stop the batch. The
// [Report] returned by [Pipeline.Run] counts every kind of failure so
// the caller can decide whether the run as a whole failed.
//
// With Jobs > 1 units run on a bounded worker group, but progress
// events and log records are emitted in discovery order: a unit's
// events are held until every unit before it has been reported. Output
// is therefore identical for any Jobs value.
//
// Cancelling the context stops new units from starting. Units already
// running finish and are reported; units never started are counted in
// [Report.Skipped].
package build
