// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts wall-clock reads so build timings are
// testable.
//
// Production code injects [Real]; tests inject [Fake] and move time
// forward explicitly with [FakeClock.Advance]. chunkc never sleeps or
// sets timers on the build path, so the interface carries only the
// reads the pipeline needs.
package clock
