// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"slices"
	"sync"
	"testing"
)

func TestStandard(t *testing.T) {
	standard := Standard()
	if standard.Platform() != DefaultPlatform {
		t.Errorf("Platform() = %q, want %q", standard.Platform(), DefaultPlatform)
	}
	if standard.LanguageVersion() != DefaultLanguageVersion {
		t.Errorf("LanguageVersion() = %q, want %q", standard.LanguageVersion(), DefaultLanguageVersion)
	}
	for _, name := range []string{"string", "table", "_G"} {
		if !standard.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}
	if standard.Has("socket") {
		t.Error("Has(socket) = true for the standard environment")
	}
}

func TestWithLibraries_DoesNotMutateReceiver(t *testing.T) {
	standard := Standard()
	extended := standard.WithLibraries("socket", "lfs", "")

	if !extended.Has("socket") || !extended.Has("lfs") || !extended.Has("string") {
		t.Errorf("extended libraries = %v", extended.Libraries())
	}
	if standard.Has("socket") {
		t.Error("WithLibraries mutated the receiver")
	}
	if extended.Has("") {
		t.Error("empty library name was installed")
	}
}

func TestLibraries_SortedCopy(t *testing.T) {
	environment := New("test", "5.2", []string{"z", "a", "m", "a"})
	libraries := environment.Libraries()
	if !slices.Equal(libraries, []string{"a", "m", "z"}) {
		t.Errorf("Libraries() = %v, want [a m z]", libraries)
	}
	libraries[0] = "changed"
	if !environment.Has("a") || environment.Has("changed") {
		t.Error("Libraries() exposed internal state")
	}
}

func TestConcurrentReads(t *testing.T) {
	environment := Standard()
	var waitGroup sync.WaitGroup
	for i := 0; i < 16; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for j := 0; j < 100; j++ {
				environment.Has("string")
				environment.Libraries()
			}
		}()
	}
	waitGroup.Wait()
}
