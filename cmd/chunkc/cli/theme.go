// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is the color palette for terminal summaries. Colors are ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	Success lipgloss.Color
	Warning lipgloss.Color
	Failure lipgloss.Color
	Faint   lipgloss.Color
}

// DefaultTheme suits dark and light terminals alike.
var DefaultTheme = Theme{
	Success: lipgloss.Color("42"),
	Warning: lipgloss.Color("214"),
	Failure: lipgloss.Color("196"),
	Faint:   lipgloss.Color("245"),
}

// Styles are Theme colors bound to a renderer for one output stream.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style
	Faint   lipgloss.Style
}

// StylesFor binds the theme to w. A pipe or file gets plain text
// unless CLICOLOR_FORCE is set; NO_COLOR always disables color.
func (theme Theme) StylesFor(w io.Writer) Styles {
	return theme.StylesWithProfile(w, termenv.NewOutput(w).EnvColorProfile())
}

// StylesWithProfile binds the theme to w with a fixed color profile.
func (theme Theme) StylesWithProfile(w io.Writer, profile termenv.Profile) Styles {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return Styles{
		Success: renderer.NewStyle().Foreground(theme.Success).Bold(true),
		Warning: renderer.NewStyle().Foreground(theme.Warning).Bold(true),
		Failure: renderer.NewStyle().Foreground(theme.Failure).Bold(true),
		Faint:   renderer.NewStyle().Foreground(theme.Faint),
	}
}
