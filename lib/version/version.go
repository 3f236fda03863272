// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// Set via -ldflags -X at build time.
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// buildSettings reads VCS stamping from the binary's embedded build
// info. It is a variable so tests can substitute fixed settings.
var buildSettings = func() map[string]string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	return settings
}

// Info returns "<version> (<commit>[-dirty], <build time>)". When
// -ldflags did not set the commit, the VCS stamp recorded by the Go
// toolchain is used instead.
func Info() string {
	commit, dirty, built := GitCommit, GitDirty == "true", BuildTime
	if commit == "unknown" {
		settings := buildSettings()
		if revision := settings["vcs.revision"]; revision != "" {
			commit = revision[:min(len(revision), 12)]
			dirty = settings["vcs.modified"] == "true"
		}
		if built == "unknown" && settings["vcs.time"] != "" {
			built = settings["vcs.time"]
		}
	}

	var builder strings.Builder
	builder.WriteString(Version)
	builder.WriteString(" (")
	builder.WriteString(commit)
	if dirty {
		builder.WriteString("-dirty")
	}
	builder.WriteString(", ")
	builder.WriteString(built)
	builder.WriteString(")")
	return builder.String()
}

// Fprint writes "<binary> <Info>" followed by a newline to w.
func Fprint(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s\n", binary, Info())
}
