package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/xamlrt/internal/uitree"
)

// Detail is one key/value row in a header or result box.
type Detail struct {
	Key   string
	Value string
}

// Header is a banner with a title, the command that produced the output and
// its parameters.
type Header struct {
	Title   string   // e.g., "demo.xaml"
	Command string   // e.g., "xamlrt render demo.xaml"
	Params  []Detail // e.g., {"Nodes", "7"}
	Width   int      // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Detail) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	dividerWidth := width - 6 // Account for border and padding
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := RenderHorizontalDivider(dividerWidth, "─")

	var paramLines []string
	for _, p := range h.Params {
		keyStyled := HeaderParamKeyStyle.Render(p.Key + ":")
		valueStyled := HeaderParamValueStyle.Render(p.Value)
		paramLines = append(paramLines, keyStyled+" "+valueStyled)
	}

	content := topSection
	if len(paramLines) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, topSection, divider, strings.Join(paramLines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2). // Account for border characters
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
)

// Result is a success or failure box.
type Result struct {
	Type    ResultType
	Title   string   // e.g., "Click dispatched from node-3"
	Details []Detail // Rows to display
	Error   error    // Error (for failure results)
	Width   int      // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, details ...Detail) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Details: details, Width: GetTerminalWidth()}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a detail row
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	marker, label, titleStyle, border := SuccessMarker, "SUCCESS", SuccessTitleStyle, SuccessColor
	if r.Type == ResultFailure {
		marker, label, titleStyle, border = FailureMarker, "FAILED", ErrorTitleStyle, ErrorColor
	}

	lines := []string{"", titleStyle.Render(fmt.Sprintf("   %s  %s  ─  %s", marker, label, r.Title)), ""}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+r.Error.Error()), "")
	}

	for _, d := range r.Details {
		keyStyled := ResultKeyStyle.Render(fmt.Sprintf("   %s:", d.Key))
		valueStyled := ResultValueStyle.Render(d.Value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

// DispatchResult summarizes a dispatch: one row per node visited, marking
// where a method ran and whether it failed.
func DispatchResult(d uitree.Dispatch, err error) *Result {
	title := fmt.Sprintf("%s at %s", d.Event, d.Origin)
	if err != nil {
		return NewFailureResult(title, err)
	}

	fired := make(map[uitree.NodeID][]uitree.Firing)
	for _, f := range d.Firings {
		fired[f.Node] = append(fired[f.Node], f)
	}

	var details []Detail
	for _, id := range d.Visited {
		fs, ok := fired[id]
		if !ok {
			details = append(details, Detail{Key: string(id), Value: "·"})
			continue
		}
		for _, f := range fs {
			v := FiredMarker + " " + f.Method
			if f.Err != nil {
				v = FailureMarker + " " + f.Method + ": " + f.Err.Error()
			}
			details = append(details, Detail{Key: string(id), Value: v})
		}
	}

	if failed := d.Failed(); len(failed) > 0 {
		return NewFailureResult(title, fmt.Errorf("%d of %d handlers failed", len(failed), len(d.Firings)), details...)
	}
	return NewSuccessResult(title, details...)
}
