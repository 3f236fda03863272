// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bureau-foundation/chunkc/lib/environment"
)

// DefaultCacheSize bounds the RuntimeResolver instance cache.
const DefaultCacheSize = 256

// RuntimeResolver resolves the libraries an environment preinstalls.
// It is safe for concurrent use and meant to be shared by every
// loader in a build.
//
// The cache gives library instances identity: while a name stays
// cached, every loader that resolves it gets the same *Library, so
// artifacts verified by different units that require the same library
// are bound to one instance, as they would be in a single runtime.
// An evicted name is rebuilt as a fresh instance.
type RuntimeResolver struct {
	environment *environment.Environment
	cache       *lru.Cache[string, Instance]
}

// NewRuntimeResolver returns a resolver over env's libraries.
func NewRuntimeResolver(env *environment.Environment, cacheSize int) (*RuntimeResolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, Instance](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating runtime resolver cache: %w", err)
	}
	return &RuntimeResolver{environment: env, cache: cache}, nil
}

// Resolve returns the library instance for name.
func (r *RuntimeResolver) Resolve(name string) (Instance, error) {
	if instance, ok := r.cache.Get(name); ok {
		return instance, nil
	}
	if !r.environment.Has(name) {
		return nil, fmt.Errorf("%q: %w in environment %s %s", name, ErrNotFound,
			r.environment.Platform(), r.environment.LanguageVersion())
	}
	instance := &Library{name: name, platform: r.environment.Platform()}
	r.cache.Add(name, instance)
	return instance, nil
}

// Library is a runtime-provided library.
type Library struct {
	name     string
	platform string
}

func (l *Library) Identifier() string { return l.name }

func (l *Library) String() string {
	return fmt.Sprintf("library %s (%s)", l.name, l.platform)
}
