// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewCommandLogger_JSONWhenNotTerminal(t *testing.T) {
	t.Setenv(DebugEnvironmentVariable, "")
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer)

	logger.Info("compile failed", "chunk", "pkg/bar")
	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buffer.String())
	}
	if record["msg"] != "compile failed" || record["chunk"] != "pkg/bar" {
		t.Errorf("record = %v", record)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by default")
	}
}

func TestNewCommandLogger_DebugFromEnvironment(t *testing.T) {
	t.Setenv(DebugEnvironmentVariable, "1")
	logger := NewCommandLogger(&bytes.Buffer{})
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("debug should be enabled when %s is set", DebugEnvironmentVariable)
	}
}
