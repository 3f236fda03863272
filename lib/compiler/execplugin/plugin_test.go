// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execplugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/chunkc/lib/codec"
	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/environment"
)

const helperEnv = "CHUNKC_EXECPLUGIN_HELPER"

// TestHelperProcess is not a real test. It is the plugin: the tests
// below re-run the test binary with helperEnv set and a mode argument.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperEnv)
	if mode == "" {
		return
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
		os.Exit(3)
	}
	var request WireRequest
	if err := codec.Unmarshal(input, &request); err != nil {
		fmt.Fprintf(os.Stderr, "decoding request: %v\n", err)
		os.Exit(3)
	}

	var response WireResponse
	switch mode {
	case "echo":
		body := fmt.Sprintf("%s|%s|%s|%s|%t|%s", request.ChunkName, request.SourcePath,
			request.Platform, request.LanguageVersion, request.Text, request.Source)
		response.Artifacts = map[string][]byte{request.ChunkName: []byte(body)}
		if request.GenerateMain {
			response.Artifacts[request.ChunkName+"$main"] = []byte("main")
		}
	case "reject":
		fmt.Fprintln(os.Stderr, "bar.lua:3: unexpected symbol near 'end'")
		response.Error = "syntax error"
	case "crash":
		fmt.Fprintln(os.Stderr, "plugin crashed")
		os.Exit(7)
	case "garbage":
		os.Stdout.WriteString("this is not cbor")
		os.Exit(0)
	case "hang":
		time.Sleep(time.Minute)
	}

	if err := codec.NewEncoder(os.Stdout).Encode(response); err != nil {
		os.Exit(3)
	}
	os.Exit(0)
}

// testBinary returns the path of the running test binary, which
// doubles as the compiler process.
func testBinary(t *testing.T) string {
	t.Helper()
	path, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable: %v", err)
	}
	return path
}

func newHelperPlugin(t *testing.T, mode string, timeout time.Duration) *Plugin {
	t.Helper()
	plugin, err := New(Options{
		Command: []string{testBinary(t), "-test.run=^TestHelperProcess$"},
		Env:     []string{helperEnv + "=" + mode},
		Timeout: timeout,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return plugin
}

func sampleRequest() compiler.Request {
	return compiler.Request{
		Source:      []byte("return 1"),
		Text:        true,
		ChunkName:   "pkg/bar",
		SourcePath:  "pkg/bar.lua",
		Environment: environment.Standard(),
	}
}

func TestCompileAll_Echo(t *testing.T) {
	plugin := newHelperPlugin(t, "echo", 0)
	request := sampleRequest()
	request.GenerateMain = true

	artifacts, err := plugin.CompileAll(context.Background(), request)
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if got, want := string(artifacts["pkg/bar"]), "pkg/bar|pkg/bar.lua|chunkc|5.2|true|return 1"; got != want {
		t.Errorf("artifact = %q, want %q", got, want)
	}
	if _, ok := artifacts["pkg/bar$main"]; !ok {
		t.Errorf("missing entry artifact; got %v", artifacts.Identifiers())
	}
}

func TestCompileAll_Failures(t *testing.T) {
	tests := []struct {
		mode    string
		timeout time.Duration
		want    []string
	}{
		{"reject", 0, []string{"syntax error", "unexpected symbol near 'end'"}},
		{"crash", 0, []string{"exit status 7", "plugin crashed"}},
		{"garbage", 0, []string{"decoding plugin response", "16 bytes, not CBOR"}},
		{"hang", 200 * time.Millisecond, []string{"timed out after 200ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			plugin := newHelperPlugin(t, tt.mode, tt.timeout)
			artifacts, err := plugin.CompileAll(context.Background(), sampleRequest())
			if err == nil {
				t.Fatalf("CompileAll succeeded with %v, want error", artifacts.Identifiers())
			}
			for _, fragment := range tt.want {
				if !strings.Contains(err.Error(), fragment) {
					t.Errorf("error %q does not contain %q", err, fragment)
				}
			}
		})
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New with no command should fail")
	}
	if _, err := New(Options{Command: []string{"chunkc-no-such-compiler-binary"}}); err == nil {
		t.Error("New with a missing binary should fail")
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	plugin, err := New(Options{Command: []string{testBinary(t)}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if plugin.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", plugin.timeout, DefaultTimeout)
	}
}
