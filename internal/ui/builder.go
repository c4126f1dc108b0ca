package ui

import (
	"fmt"
	"strings"

	"github.com/muurk/xamlrt/internal/uitree"
)

// Builder turns a tree into a Widget hierarchy. Every start hook opens a
// scope; every visit hook closes it and emits the node's widget into the
// parent scope. Grid definitions and Unknown nodes have no widget and drop
// their scope.
type Builder struct {
	uitree.NopVisitor
	scopes uitree.ScopeStack[*Widget]
	root   *Widget
}

// NewBuilder returns a builder for one walk.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build walks tree and returns the root widget.
func Build(tree *uitree.Tree) (*Widget, error) {
	b := NewBuilder()
	if err := tree.Walk(b); err != nil {
		return nil, err
	}
	root, ok := b.Root()
	if !ok {
		r, _ := tree.Root()
		return nil, fmt.Errorf("root element %s has no terminal representation", r.ElementName())
	}
	return root, nil
}

// Root returns the widget left after the walk.
func (b *Builder) Root() (*Widget, bool) {
	return b.root, b.root != nil
}

func (b *Builder) open() { b.scopes.Enter() }

func (b *Builder) emit(w *Widget) {
	if !b.scopes.Emit(w) {
		b.root = w
	}
}

func (b *Builder) discard() { b.scopes.Leave() }

func cell(n *uitree.Node, w *Widget) *Widget {
	w.Row, w.Col = uitree.GridCell(n)
	return w
}

func (b *Builder) StartVisitWindow(uitree.Window) { b.open() }

func (b *Builder) VisitWindow(w uitree.Window) {
	children := b.scopes.Leave()
	width := w.Width() / CellWidth
	if width < MinFrameWidth {
		width = MinFrameWidth
	}
	b.emit(cell(w.Node, &Widget{
		Kind:     uitree.KindWindow,
		Node:     w.ID(),
		Title:    w.Title(),
		Width:    width,
		Children: children,
	}))
}

func (b *Builder) StartVisitContentPage(uitree.ContentPage) { b.open() }

func (b *Builder) VisitContentPage(p uitree.ContentPage) {
	b.emit(cell(p.Node, &Widget{
		Kind:     uitree.KindContentPage,
		Node:     p.ID(),
		Title:    p.Title(),
		Children: b.scopes.Leave(),
	}))
}

func (b *Builder) StartVisitLabel(uitree.Label) { b.open() }

func (b *Builder) VisitLabel(l uitree.Label) {
	b.scopes.Leave()
	b.emit(cell(l.Node, &Widget{Kind: uitree.KindLabel, Node: l.ID(), Text: l.Text()}))
}

func (b *Builder) StartVisitTextBlock(uitree.TextBlock) { b.open() }

func (b *Builder) VisitTextBlock(t uitree.TextBlock) {
	b.scopes.Leave()
	b.emit(cell(t.Node, &Widget{
		Kind:  uitree.KindTextBlock,
		Node:  t.ID(),
		Text:  t.Text(),
		Bold:  strings.EqualFold(t.FontWeight(), "Bold"),
		Color: t.Foreground(),
	}))
}

func (b *Builder) StartVisitButton(uitree.Button) { b.open() }

func (b *Builder) VisitButton(btn uitree.Button) {
	b.scopes.Leave()
	b.emit(cell(btn.Node, &Widget{Kind: uitree.KindButton, Node: btn.ID(), Text: btn.Content()}))
}

func (b *Builder) StartVisitStackLayout(uitree.StackLayout) { b.open() }

func (b *Builder) VisitStackLayout(s uitree.StackLayout) {
	b.emit(cell(s.Node, &Widget{
		Kind:       uitree.KindStackLayout,
		Node:       s.ID(),
		Horizontal: s.Horizontal(),
		Children:   b.scopes.Leave(),
	}))
}

func (b *Builder) StartVisitGrid(uitree.Grid) { b.open() }

func (b *Builder) VisitGrid(g uitree.Grid) {
	b.emit(cell(g.Node, &Widget{
		Kind:     uitree.KindGrid,
		Node:     g.ID(),
		Lines:    g.ShowGridLines(),
		Children: b.scopes.Leave(),
	}))
}

func (b *Builder) StartVisitGridColumnDefinitions(uitree.GridColumnDefinitions) { b.open() }
func (b *Builder) VisitGridColumnDefinitions(uitree.GridColumnDefinitions)      { b.discard() }
func (b *Builder) StartVisitGridRowDefinitions(uitree.GridRowDefinitions)       { b.open() }
func (b *Builder) VisitGridRowDefinitions(uitree.GridRowDefinitions)            { b.discard() }
func (b *Builder) StartVisitColumnDefinition(uitree.ColumnDefinition)           { b.open() }
func (b *Builder) VisitColumnDefinition(uitree.ColumnDefinition)                { b.discard() }
func (b *Builder) StartVisitRowDefinition(uitree.RowDefinition)                 { b.open() }
func (b *Builder) VisitRowDefinition(uitree.RowDefinition)                      { b.discard() }
func (b *Builder) StartVisitUnknown(uitree.Unknown)                             { b.open() }
func (b *Builder) VisitUnknown(uitree.Unknown)                                  { b.discard() }
