// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package unit

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolve derives the complete CompileUnit for sourceFile discovered
// under packagePrefix, writing into destRoot. sourceFile should be
// absolute; Resolve does not consult the filesystem.
func Resolve(sourceFile, packagePrefix, destRoot string) CompileUnit {
	base := filepath.Base(sourceFile)
	return CompileUnit{
		SourceFile:    sourceFile,
		SourcePath:    SourcePath(packagePrefix, base),
		PackagePrefix: packagePrefix,
		ChunkName:     ChunkName(packagePrefix, base),
		OutputDir:     OutputDir(destRoot, packagePrefix),
	}
}

// PackagePath converts a dotted package prefix to its slash-separated
// path form: "pkg.sub" becomes "pkg/sub".
func PackagePath(packagePrefix string) string {
	return strings.ReplaceAll(packagePrefix, ".", "/")
}

// ChunkName returns the chunk identifier for a file with the given
// base name in packagePrefix: the package path, a slash, and the base
// name with its extension removed.
func ChunkName(packagePrefix, baseName string) string {
	stem := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	return joinPackage(packagePrefix, stem)
}

// SourcePath returns the slash-separated source path reported to the
// compiler for a file with the given base name in packagePrefix.
func SourcePath(packagePrefix, baseName string) string {
	return joinPackage(packagePrefix, baseName)
}

// OutputDir returns the host directory for packagePrefix under
// destRoot, or destRoot itself when there is no prefix.
func OutputDir(destRoot, packagePrefix string) string {
	if packagePrefix == "" {
		return destRoot
	}
	return filepath.Join(destRoot, filepath.FromSlash(PackagePath(packagePrefix)))
}

// ChildPrefix returns the package prefix for a subdirectory named
// directory inside packagePrefix.
func ChildPrefix(packagePrefix, directory string) string {
	if packagePrefix == "" {
		return directory
	}
	return packagePrefix + "." + directory
}

// ValidatePrefix checks that packagePrefix is usable as a dotted
// namespace: no empty segments and no path separators. The empty
// prefix is valid and means "no package".
func ValidatePrefix(packagePrefix string) error {
	if packagePrefix == "" {
		return nil
	}
	if strings.ContainsAny(packagePrefix, `/\`) {
		return fmt.Errorf("package prefix %q must be dotted, not a path", packagePrefix)
	}
	for _, segment := range strings.Split(packagePrefix, ".") {
		if segment == "" {
			return fmt.Errorf("package prefix %q has an empty segment", packagePrefix)
		}
	}
	return nil
}

func joinPackage(packagePrefix, name string) string {
	if packagePrefix == "" {
		return name
	}
	return PackagePath(packagePrefix) + "/" + name
}
