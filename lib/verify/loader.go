// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/chunkc/lib/unit"
)

// Instance is a loaded artifact or runtime library.
type Instance interface {
	// Identifier is the name the instance was resolved under.
	Identifier() string

	// String describes the instance for progress output.
	String() string
}

// Resolver finds instances by name.
type Resolver interface {
	Resolve(name string) (Instance, error)
}

// Platform instantiates artifact bytes. Implementations resolve any
// dependencies through the given Resolver and must not consult the
// filesystem.
type Platform interface {
	Instantiate(identifier string, data []byte, resolver Resolver) (Instance, error)
}

// ErrNotFound is returned when a name is neither in the artifact set
// nor known to the fallback resolver.
var ErrNotFound = errors.New("not found")

// ErrCycle is returned when an artifact requires itself, directly or
// through other artifacts in the set.
var ErrCycle = errors.New("dependency cycle")

// IsolatedLoader resolves names against one artifact set. It is not
// safe for concurrent use; create one per set.
type IsolatedLoader struct {
	artifacts unit.ArtifactSet
	platform  Platform
	fallback  Resolver

	loaded  map[string]loadResult
	loading []string
}

type loadResult struct {
	instance Instance
	err      error
}

// NewIsolatedLoader returns a loader over artifacts. fallback may be
// nil, in which case names outside the set are not found.
func NewIsolatedLoader(artifacts unit.ArtifactSet, platform Platform, fallback Resolver) *IsolatedLoader {
	return &IsolatedLoader{
		artifacts: artifacts,
		platform:  platform,
		fallback:  fallback,
		loaded:    make(map[string]loadResult),
	}
}

// Resolve returns the instance for name, instantiating it from the
// artifact set if present there and falling back otherwise. Results,
// including failures, are remembered for the loader's lifetime.
func (l *IsolatedLoader) Resolve(name string) (Instance, error) {
	if data, ok := l.artifacts[name]; ok {
		return l.load(name, data)
	}
	if l.fallback == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return l.fallback.Resolve(name)
}

func (l *IsolatedLoader) load(identifier string, data []byte) (Instance, error) {
	if result, ok := l.loaded[identifier]; ok {
		return result.instance, result.err
	}
	for i, pending := range l.loading {
		if pending == identifier {
			chain := append(append([]string(nil), l.loading[i:]...), identifier)
			return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(chain, " -> "))
		}
	}

	l.loading = append(l.loading, identifier)
	instance, err := l.platform.Instantiate(identifier, data, l)
	l.loading = l.loading[:len(l.loading)-1]

	l.loaded[identifier] = loadResult{instance: instance, err: err}
	return instance, err
}
