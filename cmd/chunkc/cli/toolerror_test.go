// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"io/fs"
	"testing"
)

func TestToolErrorConstructors(t *testing.T) {
	tests := []struct {
		err  *ToolError
		want ErrorCategory
	}{
		{Validation("bad %s", "input"), CategoryValidation},
		{NotFound("no files found in %v", []string{"src"}), CategoryNotFound},
		{Internal("writing: %w", fs.ErrPermission), CategoryInternal},
	}
	for _, test := range tests {
		if test.err.Category != test.want {
			t.Errorf("%q category = %s, want %s", test.err, test.err.Category, test.want)
		}
	}
}

func TestToolError_PreservesChain(t *testing.T) {
	err := Internal("writing output: %w", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see through ToolError")
	}
	if err.Error() != "writing output: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}
}
