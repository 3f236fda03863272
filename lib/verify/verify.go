// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"fmt"

	"github.com/bureau-foundation/chunkc/lib/unit"
)

// Result is the outcome of loading one artifact. Exactly one of
// Instance and Err is set; Err is always a *LoadError.
type Result struct {
	Identifier string
	Instance   Instance
	Err        error
}

// LoadError reports an artifact that failed to load.
type LoadError struct {
	Identifier string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Identifier, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Verify loads every artifact in set through a fresh IsolatedLoader
// and returns the results in identifier order.
func Verify(set unit.ArtifactSet, platform Platform, fallback Resolver) []Result {
	loader := NewIsolatedLoader(set, platform, fallback)
	results := make([]Result, 0, len(set))
	for _, identifier := range set.Identifiers() {
		instance, err := loader.Resolve(identifier)
		if err != nil {
			results = append(results, Result{
				Identifier: identifier,
				Err:        &LoadError{Identifier: identifier, Err: err},
			})
			continue
		}
		results = append(results, Result{Identifier: identifier, Instance: instance})
	}
	return results
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	count := 0
	for _, result := range results {
		if result.Err != nil {
			count++
		}
	}
	return count
}
