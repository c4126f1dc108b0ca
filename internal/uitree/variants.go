package uitree

import (
	"strconv"
	"strings"
)

// Defaults applied by the variant accessors when markup leaves a property
// unset or unparsable.
const (
	DefaultTitle        = "Title"
	DefaultWindowWidth  = 320
	DefaultWindowHeight = 200
	DefaultOrientation  = "Vertical"
)

// Window is the typed view of a KindWindow node.
type Window struct{ *Node }

// Title returns the window title.
func (w Window) Title() string { return w.PropertyOr("Title", DefaultTitle) }

// Width returns the window width, falling back to DefaultWindowWidth.
func (w Window) Width() int {
	if v, ok := w.Node.Width(); ok {
		return v
	}
	return DefaultWindowWidth
}

// Height returns the window height, falling back to DefaultWindowHeight.
func (w Window) Height() int {
	if v, ok := w.Node.Height(); ok {
		return v
	}
	return DefaultWindowHeight
}

// WindowStyle returns the raw WindowStyle property.
func (w Window) WindowStyle() string { return w.PropertyOr("WindowStyle", "") }

// ContentPage is the typed view of a KindContentPage node.
type ContentPage struct{ *Node }

// Title returns the page title.
func (p ContentPage) Title() string { return p.PropertyOr("Title", DefaultTitle) }

// Label is the typed view of a KindLabel node.
type Label struct{ *Node }

// Text returns the label text.
func (l Label) Text() string { return l.PropertyOr("Text", "") }

// TextBlock is the typed view of a KindTextBlock node.
type TextBlock struct{ *Node }

func (t TextBlock) Text() string       { return t.PropertyOr("Text", "") }
func (t TextBlock) FontSize() string   { return t.PropertyOr("FontSize", "") }
func (t TextBlock) Foreground() string { return t.PropertyOr("Foreground", "") }

// FontWeight returns FontWeight, or the older TextWeight spelling.
func (t TextBlock) FontWeight() string {
	if v, ok := t.Property("FontWeight"); ok {
		return v
	}
	return t.PropertyOr("TextWeight", "")
}

// Button is the typed view of a KindButton node.
type Button struct{ *Node }

// Content returns the button caption.
func (b Button) Content() string { return b.PropertyOr("Content", "") }

// Click returns the method bound to the button's Click event, if any.
func (b Button) Click() (string, bool) { return b.Property("Click") }

// Grid is the typed view of a KindGrid node.
type Grid struct{ *Node }

func (g Grid) Name() string       { return g.PropertyOr("Name", "") }
func (g Grid) Background() string { return g.PropertyOr("Background", "") }

// ShowGridLines parses the ShowGridLines property; anything but a true
// boolean is false.
func (g Grid) ShowGridLines() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(g.PropertyOr("ShowGridLines", "")))
	return err == nil && v
}

// ColumnDefinitions returns the grid's column definitions element, if any.
func (g Grid) ColumnDefinitions() (GridColumnDefinitions, bool) {
	for _, c := range g.Children() {
		if c.Kind() == KindGridColumnDefinitions {
			return GridColumnDefinitions{c}, true
		}
	}
	return GridColumnDefinitions{}, false
}

// RowDefinitions returns the grid's row definitions element, if any.
func (g Grid) RowDefinitions() (GridRowDefinitions, bool) {
	for _, c := range g.Children() {
		if c.Kind() == KindGridRowDefinitions {
			return GridRowDefinitions{c}, true
		}
	}
	return GridRowDefinitions{}, false
}

// GridColumnDefinitions is the typed view of a Grid.ColumnDefinitions node.
type GridColumnDefinitions struct{ *Node }

// Columns returns the ColumnDefinition children.
func (d GridColumnDefinitions) Columns() []ColumnDefinition {
	var out []ColumnDefinition
	for _, c := range d.Children() {
		if c.Kind() == KindColumnDefinition {
			out = append(out, ColumnDefinition{c})
		}
	}
	return out
}

// GridRowDefinitions is the typed view of a Grid.RowDefinitions node.
type GridRowDefinitions struct{ *Node }

// Rows returns the RowDefinition children.
func (d GridRowDefinitions) Rows() []RowDefinition {
	var out []RowDefinition
	for _, c := range d.Children() {
		if c.Kind() == KindRowDefinition {
			out = append(out, RowDefinition{c})
		}
	}
	return out
}

// ColumnDefinition is the typed view of a KindColumnDefinition node. Sizes
// are kept raw ("*", "Auto", "100").
type ColumnDefinition struct{ *Node }

func (c ColumnDefinition) Width() string { return c.PropertyOr("Width", "") }

// RowDefinition is the typed view of a KindRowDefinition node.
type RowDefinition struct{ *Node }

func (r RowDefinition) Height() string { return r.PropertyOr("Height", "") }

// StackLayout is the typed view of a KindStackLayout node.
type StackLayout struct{ *Node }

// Orientation returns "Vertical" or "Horizontal" as written in markup.
func (s StackLayout) Orientation() string { return s.PropertyOr("Orientation", DefaultOrientation) }

// Horizontal reports whether children are laid out side by side.
func (s StackLayout) Horizontal() bool {
	return strings.EqualFold(strings.TrimSpace(s.Orientation()), "Horizontal")
}

// Unknown is the typed view of a node whose element name is not recognised.
// It keeps the structure and takes part in visiting and bubbling.
type Unknown struct{ *Node }

// GridCell returns the attached Grid.Row and Grid.Column of any node, 0 when
// unset or unparsable.
func GridCell(n *Node) (row, col int) {
	if v, ok := n.Attribute("Grid.Row"); ok {
		row, _ = strconv.Atoi(strings.TrimSpace(v))
	}
	if v, ok := n.Attribute("Grid.Column"); ok {
		col, _ = strconv.Atoi(strings.TrimSpace(v))
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return row, col
}
