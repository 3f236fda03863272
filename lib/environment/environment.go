// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import "sort"

// DefaultPlatform and DefaultLanguageVersion describe the environment
// returned by Standard.
const (
	DefaultPlatform        = "chunkc"
	DefaultLanguageVersion = "5.2"
)

// standardLibraries are the libraries a standard Lua 5.2 runtime
// installs into its globals table.
var standardLibraries = []string{
	"_G",
	"bit32",
	"coroutine",
	"debug",
	"io",
	"math",
	"os",
	"package",
	"string",
	"table",
}

// Environment is an immutable description of the target runtime.
type Environment struct {
	platform        string
	languageVersion string
	libraries       map[string]struct{}
}

// Standard returns the default environment: platform "chunkc",
// language version 5.2, and the standard libraries.
func Standard() *Environment {
	return New(DefaultPlatform, DefaultLanguageVersion, standardLibraries)
}

// New returns an environment with exactly the given libraries.
// Duplicate and empty names are ignored.
func New(platform, languageVersion string, libraries []string) *Environment {
	environment := &Environment{
		platform:        platform,
		languageVersion: languageVersion,
		libraries:       make(map[string]struct{}, len(libraries)),
	}
	for _, name := range libraries {
		if name != "" {
			environment.libraries[name] = struct{}{}
		}
	}
	return environment
}

// WithLibraries returns a copy of e with additional libraries
// installed. e is unchanged.
func (e *Environment) WithLibraries(libraries ...string) *Environment {
	return New(e.platform, e.languageVersion, append(e.Libraries(), libraries...))
}

// Platform returns the target platform name.
func (e *Environment) Platform() string { return e.platform }

// LanguageVersion returns the source language version compiled for.
func (e *Environment) LanguageVersion() string { return e.languageVersion }

// Has reports whether a library with the given name is preinstalled.
func (e *Environment) Has(name string) bool {
	_, ok := e.libraries[name]
	return ok
}

// Libraries returns the preinstalled library names in lexical order.
// The slice is a fresh copy.
func (e *Environment) Libraries() []string {
	names := make([]string, 0, len(e.libraries))
	for name := range e.libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
