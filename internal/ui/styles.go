package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - frames, focus
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	DefaultPadding   = 2   // Default padding inside boxes
	CellWidth        = 8   // Markup width units per terminal column
	MinFrameWidth    = 24  // Narrowest frame drawn for a window
)

// Theme holds the colors that vary per user configuration.
type Theme struct {
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{Accent: PrimaryColor, Muted: MutedColor}
}

// NewTheme builds a theme from configured color strings. Empty values keep
// the defaults.
func NewTheme(accent, muted string) Theme {
	t := DefaultTheme()
	if accent != "" {
		t.Accent = lipgloss.Color(accent)
	}
	if muted != "" {
		t.Muted = lipgloss.Color(muted)
	}
	return t
}

// Shared styles
var (
	// HeaderTitleStyle is for the main header title (e.g., "DEMO.XAML")
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	// HeaderCommandStyle is for the command path (e.g., "xamlrt render demo.xaml")
	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamKeyStyle is for parameter keys (e.g., "Nodes:")
	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamValueStyle is for parameter values
	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// SuccessTitleStyle is for the success result title
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// ErrorTitleStyle is for the error result title
	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// ErrorMessageStyle is for error message text
	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	// ResultKeyStyle is for result detail keys
	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	// ResultValueStyle is for result detail values
	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// StatusStyle is for the status line under the interactive view
	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// Markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	FiredMarker   = "●"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// FrameStyle returns the border style for window and page frames
func (t Theme) FrameStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Width(width-2). // Account for border characters
		Padding(0, 1)
}

// FrameTitleStyle returns the style for the title row inside a frame
func (t Theme) FrameTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
}

// ButtonStyle returns the style for a button, highlighted when focused
func (t Theme) ButtonStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if focused {
		return s.BorderForeground(t.Accent).Foreground(t.Accent).Bold(true)
	}
	return s.BorderForeground(t.Muted).Foreground(TextColor)
}

// CellStyle returns the style for a grid cell, bordered when grid lines are
// shown
func (t Theme) CellStyle(lines bool) lipgloss.Style {
	if !lines {
		return lipgloss.NewStyle().PaddingRight(1)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Muted)
}

// RenderHorizontalDivider creates a horizontal line of the specified width
func RenderHorizontalDivider(width int, char string) string {
	result := ""
	for i := 0; i < width; i++ {
		result += char
	}
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(result)
}
