// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestFlag finds the first unrecognized long flag in args and
// returns the closest defined flag as "--name", or "" if nothing is
// within an edit distance of 3. Shorthand flags are not considered:
// every letter is one edit from every other.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "--") {
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		if flagSet.Lookup(name) != nil {
			continue
		}

		bestName := ""
		bestDistance := 4 // threshold: only suggest if distance <= 3
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if distance := levenshtein(name, flag.Name); distance < bestDistance {
				bestDistance = distance
				bestName = flag.Name
			}
		})
		if bestName == "" {
			return ""
		}
		return "--" + bestName
	}
	return ""
}

// levenshtein computes the edit distance between two strings: the
// minimum number of single-character insertions, deletions, or
// substitutions that turn one into the other.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Single row of the distance matrix, updated in place.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}

		previous = current
	}

	return previous[len(a)]
}
