// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/chunkc/lib/unit"
)

// DefaultExtension is appended to identifiers when Writer.Extension is
// empty.
const DefaultExtension = ".luac"

// Writer writes artifact sets into a destination tree. The zero value
// is not usable; DestRoot is required.
type Writer struct {
	DestRoot  string
	Extension string
}

// Written describes one artifact on disk.
type Written struct {
	Identifier string
	Path       string
	Size       int
}

// WriteError reports an artifact that could not be written.
type WriteError struct {
	Identifier string
	Path       string
	Err        error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("writing artifact %q: %v", e.Identifier, e.Err)
	}
	return fmt.Sprintf("writing artifact %q to %s: %v", e.Identifier, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ErrUnsafeIdentifier is wrapped by a WriteError for identifiers that
// would resolve outside DestRoot.
var ErrUnsafeIdentifier = errors.New("identifier escapes the destination root")

// Write persists every artifact in set, in identifier order. It
// returns the artifacts that were written and, if any failed, an
// error joining a *WriteError per failure.
func (w *Writer) Write(set unit.ArtifactSet) ([]Written, error) {
	var written []Written
	var failures []error
	for _, identifier := range set.Identifiers() {
		result, err := w.writeOne(identifier, set[identifier])
		if err != nil {
			failures = append(failures, err)
			continue
		}
		written = append(written, result)
	}
	return written, errors.Join(failures...)
}

// Path returns the host path an identifier is written to, or an
// error if the identifier is unsafe.
func (w *Writer) Path(identifier string) (string, error) {
	if err := checkIdentifier(identifier); err != nil {
		return "", err
	}
	extension := w.Extension
	if extension == "" {
		extension = DefaultExtension
	}
	return filepath.Join(w.DestRoot, filepath.FromSlash(identifier)+extension), nil
}

func (w *Writer) writeOne(identifier string, data []byte) (Written, error) {
	target, err := w.Path(identifier)
	if err != nil {
		return Written{}, &WriteError{Identifier: identifier, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Written{}, &WriteError{Identifier: identifier, Path: target, Err: err}
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return Written{}, &WriteError{Identifier: identifier, Path: target, Err: err}
	}
	return Written{Identifier: identifier, Path: target, Size: len(data)}, nil
}

func checkIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("%w: empty identifier", ErrUnsafeIdentifier)
	}
	if strings.Contains(identifier, `\`) || path.IsAbs(identifier) || filepath.IsAbs(identifier) {
		return ErrUnsafeIdentifier
	}
	for _, segment := range strings.Split(identifier, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return ErrUnsafeIdentifier
		}
	}
	return nil
}
