package ui

import (
	"github.com/muurk/xamlrt/internal/uitree"
)

// Widget is one element of the terminal presentation of a tree.
type Widget struct {
	Kind uitree.Kind
	Node uitree.NodeID

	Title      string // frames
	Text       string // labels, text blocks, button captions
	Bold       bool
	Color      string // foreground override for text blocks
	Horizontal bool   // stacks
	Lines      bool   // grids: draw cell borders
	Width      int    // frames: columns, 0 for the renderer's width
	Row, Col   int    // attached grid cell

	Children []*Widget
}

// Focusable reports whether the widget takes keyboard focus.
func (w *Widget) Focusable() bool {
	return w.Kind == uitree.KindButton
}

// Buttons returns the focusable widgets in document order.
func (w *Widget) Buttons() []*Widget {
	var out []*Widget
	var walk func(*Widget)
	walk = func(n *Widget) {
		if n.Focusable() {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(w)
	return out
}

// Find returns the widget built from the node with the given id.
func (w *Widget) Find(id uitree.NodeID) (*Widget, bool) {
	if w.Node == id {
		return w, true
	}
	for _, c := range w.Children {
		if found, ok := c.Find(id); ok {
			return found, true
		}
	}
	return nil, false
}
