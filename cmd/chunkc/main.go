// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/chunkc/lib/process"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	process.Exit(err)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return rootCommand(ctx, stdout, stderr).Execute(args)
}
