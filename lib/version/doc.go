// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the chunkc build version.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected with
// -ldflags -X. A plain "go build" leaves the commit unset, in which
// case [Info] reads the VCS stamp from the embedded build info.
package version
