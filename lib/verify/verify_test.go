// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/chunkc/lib/chunkfile"
	"github.com/bureau-foundation/chunkc/lib/environment"
	"github.com/bureau-foundation/chunkc/lib/unit"
)

func encodeChunk(t *testing.T, identifier string, kind chunkfile.Kind, body string, requires ...string) []byte {
	t.Helper()
	data, err := chunkfile.Encode(chunkfile.Header{
		Identifier: identifier,
		ChunkName:  identifier,
		Kind:       kind,
		Encoding:   chunkfile.EncodingSource,
		Requires:   requires,
	}, []byte(body), chunkfile.CompressionAuto)
	if err != nil {
		t.Fatalf("chunkfile.Encode(%s): %v", identifier, err)
	}
	return data
}

func newRuntimeResolver(t *testing.T) *RuntimeResolver {
	t.Helper()
	resolver, err := NewRuntimeResolver(environment.Standard(), 0)
	if err != nil {
		t.Fatalf("NewRuntimeResolver: %v", err)
	}
	return resolver
}

func TestVerify_AllLoad(t *testing.T) {
	set := unit.ArtifactSet{
		"pkg/bar":      encodeChunk(t, "pkg/bar", chunkfile.KindChunk, "return 1", "string"),
		"pkg/bar$main": encodeChunk(t, "pkg/bar$main", chunkfile.KindEntry, "return require('pkg.bar')", "pkg/bar"),
	}

	results := Verify(set, ChunkPlatform{}, newRuntimeResolver(t))
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if Failed(results) != 0 {
		t.Fatalf("unexpected failures: %+v", results)
	}
	if results[0].Identifier != "pkg/bar" || results[1].Identifier != "pkg/bar$main" {
		t.Errorf("result order = %s, %s", results[0].Identifier, results[1].Identifier)
	}

	entry, ok := results[1].Instance.(*Chunk)
	if !ok {
		t.Fatalf("entry instance is %T, want *Chunk", results[1].Instance)
	}
	if len(entry.Dependencies) != 1 || entry.Dependencies[0] != results[0].Instance {
		t.Error("entry should depend on the exact instance loaded for pkg/bar")
	}
	if !strings.HasPrefix(results[0].Instance.String(), "chunk pkg/bar (source, 8 bytes, ") {
		t.Errorf("String() = %q", results[0].Instance.String())
	}
}

func TestVerify_MalformedArtifactDoesNotStopOthers(t *testing.T) {
	set := unit.ArtifactSet{
		"a": encodeChunk(t, "a", chunkfile.KindChunk, "return 'a'"),
		"b": []byte("definitely not a chunkfile"),
		"c": encodeChunk(t, "c", chunkfile.KindChunk, "return 'c'"),
	}

	results := Verify(set, ChunkPlatform{}, nil)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if Failed(results) != 1 {
		t.Fatalf("Failed = %d, want 1", Failed(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("a and c should load: %v, %v", results[0].Err, results[2].Err)
	}

	var loadError *LoadError
	if !errors.As(results[1].Err, &loadError) || loadError.Identifier != "b" {
		t.Fatalf("b error = %v, want *LoadError for b", results[1].Err)
	}
	if !errors.Is(results[1].Err, chunkfile.ErrNotChunkfile) {
		t.Errorf("b error = %v, want ErrNotChunkfile", results[1].Err)
	}
	if results[1].Instance != nil {
		t.Error("failed result should have no instance")
	}
}

func TestVerify_DependencyFailurePropagates(t *testing.T) {
	corrupt := encodeChunk(t, "lib", chunkfile.KindChunk, strings.Repeat("x", 100))
	corrupt[len(corrupt)-1] ^= 0xff
	set := unit.ArtifactSet{
		"lib":  corrupt,
		"main": encodeChunk(t, "main", chunkfile.KindEntry, "require('lib')", "lib"),
	}

	results := Verify(set, ChunkPlatform{}, nil)
	for _, result := range results {
		if !errors.Is(result.Err, chunkfile.ErrCorrupt) {
			t.Errorf("%s: error = %v, want ErrCorrupt", result.Identifier, result.Err)
		}
	}
}

func TestVerify_NeverResolvesOutsideSetAndRuntime(t *testing.T) {
	set := unit.ArtifactSet{
		"main": encodeChunk(t, "main", chunkfile.KindEntry, "require('elsewhere')", "elsewhere"),
	}
	results := Verify(set, ChunkPlatform{}, newRuntimeResolver(t))
	if !errors.Is(results[0].Err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", results[0].Err)
	}
}

func TestVerify_IdentifierMismatch(t *testing.T) {
	set := unit.ArtifactSet{"renamed": encodeChunk(t, "original", chunkfile.KindChunk, "return 1")}
	results := Verify(set, ChunkPlatform{}, nil)
	if results[0].Err == nil || !strings.Contains(results[0].Err.Error(), `identifies itself as "original"`) {
		t.Errorf("error = %v, want identifier mismatch", results[0].Err)
	}
}

func TestIsolatedLoader_Cycle(t *testing.T) {
	set := unit.ArtifactSet{
		"a": encodeChunk(t, "a", chunkfile.KindChunk, "", "b"),
		"b": encodeChunk(t, "b", chunkfile.KindChunk, "", "a"),
	}
	results := Verify(set, ChunkPlatform{}, nil)
	for _, result := range results {
		if !errors.Is(result.Err, ErrCycle) {
			t.Errorf("%s: error = %v, want ErrCycle", result.Identifier, result.Err)
		}
	}
	if !strings.Contains(results[0].Err.Error(), "a -> b -> a") {
		t.Errorf("cycle error = %v, want chain a -> b -> a", results[0].Err)
	}
}

// countingPlatform counts instantiations per identifier.
type countingPlatform struct {
	counts map[string]int
}

func (p *countingPlatform) Instantiate(identifier string, data []byte, resolver Resolver) (Instance, error) {
	p.counts[identifier]++
	for _, name := range strings.Fields(string(data)) {
		if _, err := resolver.Resolve(name); err != nil {
			return nil, err
		}
	}
	return &Library{name: identifier}, nil
}

func TestIsolatedLoader_InstantiatesOnce(t *testing.T) {
	platform := &countingPlatform{counts: make(map[string]int)}
	set := unit.ArtifactSet{
		"base": nil,
		"x":    []byte("base"),
		"y":    []byte("base x"),
	}
	loader := NewIsolatedLoader(set, platform, nil)
	for _, identifier := range set.Identifiers() {
		if _, err := loader.Resolve(identifier); err != nil {
			t.Fatalf("Resolve(%s): %v", identifier, err)
		}
	}
	for identifier, count := range platform.counts {
		if count != 1 {
			t.Errorf("%s instantiated %d times, want 1", identifier, count)
		}
	}
}

func TestRuntimeResolver(t *testing.T) {
	resolver := newRuntimeResolver(t)

	first, err := resolver.Resolve("string")
	if err != nil {
		t.Fatalf("Resolve(string): %v", err)
	}
	second, err := resolver.Resolve("string")
	if err != nil {
		t.Fatalf("Resolve(string) again: %v", err)
	}
	if first != second {
		t.Error("cached library instance should be reused")
	}
	if first.String() != "library string (chunkc)" {
		t.Errorf("String() = %q", first.String())
	}

	if _, err := resolver.Resolve("socket"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(socket) error = %v, want ErrNotFound", err)
	}
}

func TestRuntimeResolver_SharedAcrossLoaders(t *testing.T) {
	resolver := newRuntimeResolver(t)
	first := NewIsolatedLoader(unit.ArtifactSet{}, ChunkPlatform{}, resolver)
	second := NewIsolatedLoader(unit.ArtifactSet{}, ChunkPlatform{}, resolver)

	fromFirst, err := first.Resolve("table")
	if err != nil {
		t.Fatalf("first loader Resolve(table): %v", err)
	}
	fromSecond, err := second.Resolve("table")
	if err != nil {
		t.Fatalf("second loader Resolve(table): %v", err)
	}
	if fromFirst != fromSecond {
		t.Error("loaders sharing a resolver should see the same library instance")
	}
}

func TestRuntimeResolver_ConcurrentUse(t *testing.T) {
	resolver := newRuntimeResolver(t)
	var group sync.WaitGroup
	for i := 0; i < 16; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			for _, name := range environment.Standard().Libraries() {
				if _, err := resolver.Resolve(name); err != nil {
					t.Errorf("Resolve(%s): %v", name, err)
				}
			}
		}()
	}
	group.Wait()
}
