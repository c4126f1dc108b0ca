package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/xamlrt/internal/uitree"
)

// Renderer draws a Widget hierarchy.
type Renderer struct {
	Theme   Theme
	Width   int           // columns available to frames without their own width
	Focused uitree.NodeID // button drawn highlighted
}

// NewRenderer returns a renderer sized to the terminal.
func NewRenderer(theme Theme) Renderer {
	return Renderer{Theme: theme, Width: GetTerminalWidth()}
}

// Render draws w and its children.
func (r Renderer) Render(w *Widget) string {
	switch w.Kind {
	case uitree.KindWindow, uitree.KindContentPage:
		return r.frame(w)
	case uitree.KindLabel:
		return w.Text
	case uitree.KindTextBlock:
		s := lipgloss.NewStyle().Bold(w.Bold)
		if w.Color != "" {
			s = s.Foreground(lipgloss.Color(w.Color))
		}
		return s.Render(w.Text)
	case uitree.KindButton:
		return r.Theme.ButtonStyle(w.Node == r.Focused).Render(w.Text)
	case uitree.KindStackLayout:
		return r.stack(w)
	case uitree.KindGrid:
		return r.grid(w)
	default:
		return ""
	}
}

func (r Renderer) children(w *Widget) []string {
	out := make([]string, 0, len(w.Children))
	for _, c := range w.Children {
		out = append(out, r.Render(c))
	}
	return out
}

func (r Renderer) frame(w *Widget) string {
	width := w.Width
	if width <= 0 || (r.Width > 0 && width > r.Width) {
		width = r.Width
	}
	if width < MinFrameWidth {
		width = MinFrameWidth
	}

	parts := []string{
		r.Theme.FrameTitleStyle().Render(w.Title),
		lipgloss.NewStyle().Foreground(r.Theme.Muted).Render(strings.Repeat("─", max(width-4, 1))),
	}
	parts = append(parts, r.children(w)...)
	return r.Theme.FrameStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (r Renderer) stack(w *Widget) string {
	parts := r.children(w)
	if len(parts) == 0 {
		return ""
	}
	if w.Horizontal {
		spaced := make([]string, 0, 2*len(parts)-1)
		for i, p := range parts {
			if i > 0 {
				spaced = append(spaced, " ")
			}
			spaced = append(spaced, p)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// grid lays children out row-major by their attached cell. Cells sharing a
// position are stacked in document order.
func (r Renderer) grid(w *Widget) string {
	rows := make(map[int][]*Widget)
	var order []int
	for _, c := range w.Children {
		if _, seen := rows[c.Row]; !seen {
			order = append(order, c.Row)
		}
		rows[c.Row] = append(rows[c.Row], c)
	}
	sort.Ints(order)

	style := r.Theme.CellStyle(w.Lines)
	var lines []string
	for _, row := range order {
		cells := rows[row]
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].Col < cells[j].Col })
		rendered := make([]string, 0, len(cells))
		for _, c := range cells {
			rendered = append(rendered, style.Render(r.Render(c)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
