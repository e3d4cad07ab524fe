// Package style provides terminal output formatting for steamshots commands.
//
// It combines lipgloss styles for text rendering with pterm for status
// badges and prefixes. Colors adapt to light and dark terminal backgrounds
// through the adaptive theme in themes.go.
//
// The Renderer interface has two implementations: TerminalRenderer for
// interactive use and PlainRenderer for pipes and scripts. Commands pick
// one based on whether stdout is a terminal.
package style
