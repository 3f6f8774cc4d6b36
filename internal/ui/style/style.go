// Package style holds the colors and markers of log lines.
package style

import "github.com/charmbracelet/lipgloss"

// Level colors.
var (
	Debug = lipgloss.Color("#8B5CF6")
	Info  = lipgloss.Color("#667085")
	Warn  = lipgloss.Color("#F59E0B")
	Error = lipgloss.Color("#D93025")
)

// Level markers.
const (
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)
