// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execplugin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bureau-foundation/chunkc/lib/codec"
	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/unit"
)

// DefaultTimeout bounds a single plugin invocation when Options
// leaves Timeout zero.
const DefaultTimeout = time.Minute

// maxStderr caps how much plugin stderr ends up in an error message.
const maxStderr = 4096

// Options configures a Plugin.
type Options struct {
	// Command is the program and its arguments. Command[0] is looked
	// up on PATH when it contains no slash.
	Command []string

	// Env is appended to the chunkc process environment.
	Env []string

	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// Plugin is a compiler.Compiler backed by an external command. It
// starts a fresh process per unit, so concurrent calls are safe.
type Plugin struct {
	path    string
	args    []string
	env     []string
	timeout time.Duration
	logger  *slog.Logger
}

var _ compiler.Compiler = (*Plugin)(nil)

// New resolves the plugin command. The binary must exist now; a
// missing compiler is a configuration error, not a per-unit one.
func New(options Options) (*Plugin, error) {
	if len(options.Command) == 0 || options.Command[0] == "" {
		return nil, errors.New("exec compiler: no command configured")
	}
	path, err := exec.LookPath(options.Command[0])
	if err != nil {
		return nil, fmt.Errorf("exec compiler: %w", err)
	}

	plugin := &Plugin{
		path:    path,
		args:    options.Command[1:],
		env:     options.Env,
		timeout: options.Timeout,
		logger:  options.Logger,
	}
	if plugin.timeout <= 0 {
		plugin.timeout = DefaultTimeout
	}
	if plugin.logger == nil {
		plugin.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return plugin, nil
}

// CompileAll runs the command for one unit.
func (p *Plugin) CompileAll(ctx context.Context, request compiler.Request) (unit.ArtifactSet, error) {
	wire := WireRequest{
		ChunkName:    request.ChunkName,
		SourcePath:   request.SourcePath,
		Source:       request.Source,
		Text:         request.Text,
		GenerateMain: request.GenerateMain,
	}
	if request.Environment != nil {
		wire.Platform = request.Environment.Platform()
		wire.LanguageVersion = request.Environment.LanguageVersion()
		wire.Libraries = request.Environment.Libraries()
	}
	input, err := codec.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encoding plugin request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, p.path, p.args...)
	command.Stdin = bytes.NewReader(input)
	command.Stdout = &stdout
	command.Stderr = &stderr
	command.WaitDelay = time.Second
	if len(p.env) > 0 {
		command.Env = append(os.Environ(), p.env...)
	}

	start := time.Now()
	runErr := command.Run()
	p.logger.Debug("plugin finished",
		"chunk", request.ChunkName,
		"command", p.path,
		"duration", time.Since(start),
		"stdout_bytes", stdout.Len(),
	)

	if runErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, p.formatError(&stderr, fmt.Errorf("timed out after %s", p.timeout))
		}
		return nil, p.formatError(&stderr, runErr)
	}

	var response WireResponse
	if err := codec.Unmarshal(stdout.Bytes(), &response); err != nil {
		return nil, p.formatError(&stderr, fmt.Errorf("decoding plugin response (%s): %w", codec.Describe(stdout.Bytes()), err))
	}
	if response.Error != "" {
		return nil, p.formatError(&stderr, errors.New(response.Error))
	}
	return unit.ArtifactSet(response.Artifacts), nil
}

// formatError names the command and appends any stderr output, which
// usually carries the compiler's diagnostics.
func (p *Plugin) formatError(stderr *bytes.Buffer, err error) error {
	stderrText := strings.TrimSpace(stderr.String())
	if len(stderrText) > maxStderr {
		stderrText = stderrText[:maxStderr] + "..."
	}
	if stderrText != "" {
		return fmt.Errorf("%s: %w\n%s", p.path, err, stderrText)
	}
	return fmt.Errorf("%s: %w", p.path, err)
}
