// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/chunkc/lib/unit"
)

// DefaultExtension is the source file suffix used when Options does
// not name one.
const DefaultExtension = ".lua"

// ErrNoSources is returned by Collect when no seed yielded a source
// file. Callers distinguish it from I/O failures with errors.Is.
var ErrNoSources = errors.New("no files found")

// Options controls how seeds are resolved and expanded.
type Options struct {
	// SourceRoot is the directory seeds are resolved against.
	// Empty means the current directory.
	SourceRoot string

	// DestRoot is the destination root used to derive each unit's
	// output directory.
	DestRoot string

	// PackagePrefix is the initial dotted package prefix.
	PackagePrefix string

	// Recursive enables directory traversal.
	Recursive bool

	// Extension is the source file suffix, including the dot.
	// Empty means DefaultExtension.
	Extension string

	// Logger receives debug records for skipped seeds and warnings
	// for unreadable directories. Nil discards them.
	Logger *slog.Logger
}

// Collect expands seeds into compile units. It returns ErrNoSources
// (wrapped with the seed list) when nothing was found.
func Collect(seeds []string, options Options) ([]unit.CompileUnit, error) {
	collector := newCollector(options)

	var units []unit.CompileUnit
	for _, seed := range seeds {
		found, err := collector.seed(seed)
		if err != nil {
			return nil, err
		}
		units = append(units, found...)
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoSources, seeds)
	}
	return units, nil
}

// collector carries the read-only options through the traversal.
type collector struct {
	options   Options
	extension string
	logger    *slog.Logger
}

func newCollector(options Options) collector {
	extension := options.Extension
	if extension == "" {
		extension = DefaultExtension
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if options.SourceRoot == "" {
		options.SourceRoot = "."
	}
	return collector{options: options, extension: extension, logger: logger}
}

// seed resolves one command-line seed and returns its contribution.
func (c collector) seed(seed string) ([]unit.CompileUnit, error) {
	path, err := filepath.Abs(filepath.Join(c.options.SourceRoot, seed))
	if err != nil {
		return nil, fmt.Errorf("resolving seed %q: %w", seed, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		c.logger.Debug("skipping seed", "seed", seed, "path", path, "reason", err)
		return nil, nil
	}

	switch {
	case info.IsDir() && c.options.Recursive:
		return c.directory(path, c.options.PackagePrefix, []os.FileInfo{info}), nil
	case info.IsDir():
		c.logger.Debug("skipping directory seed without recursion", "seed", seed)
		return nil, nil
	case info.Mode().IsRegular():
		if compileUnit, ok := c.file(path, c.options.PackagePrefix); ok {
			return []unit.CompileUnit{compileUnit}, nil
		}
		c.logger.Debug("skipping non-source seed", "seed", seed, "extension", c.extension)
		return nil, nil
	default:
		c.logger.Debug("skipping irregular seed", "seed", seed, "mode", info.Mode().String())
		return nil, nil
	}
}

// directory returns every unit below dir. ancestors holds the
// directories on the current traversal path, used to stop symlink
// cycles.
func (c collector) directory(dir, packagePrefix string, ancestors []os.FileInfo) []unit.CompileUnit {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Warn("cannot read directory", "path", dir, "error", err)
		return nil
	}

	var units []unit.CompileUnit
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Stat rather than entry.Type so symlinks are followed.
		info, err := os.Stat(path)
		if err != nil {
			c.logger.Debug("skipping entry", "path", path, "reason", err)
			continue
		}

		switch {
		case info.IsDir():
			if revisits(ancestors, info) {
				c.logger.Warn("skipping directory cycle", "path", path)
				continue
			}
			childPrefix := unit.ChildPrefix(packagePrefix, entry.Name())
			units = append(units, c.directory(path, childPrefix, append(ancestors[:len(ancestors):len(ancestors)], info))...)
		case info.Mode().IsRegular():
			if compileUnit, ok := c.file(path, packagePrefix); ok {
				units = append(units, compileUnit)
			}
		}
	}
	return units
}

// file resolves path into a unit if its name marks it as a source
// file. A file named exactly like the extension has no stem to build
// a chunk name from and is skipped.
func (c collector) file(path, packagePrefix string) (unit.CompileUnit, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, c.extension) || name == c.extension {
		return unit.CompileUnit{}, false
	}
	return unit.Resolve(path, packagePrefix, c.options.DestRoot), true
}

func revisits(ancestors []os.FileInfo, info os.FileInfo) bool {
	for _, ancestor := range ancestors {
		if os.SameFile(ancestor, info) {
			return true
		}
	}
	return false
}
