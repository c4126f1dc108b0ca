// Package htmlview renders a UI tree as HTML with gomponents.
//
// Build walks the tree with the same scope discipline as the terminal
// builder: each node's start hook opens a scope, its visit hook wraps the
// collected children in the node's element and emits it to the parent.
// Every element carries data-node-id so a browser can raise events at the
// node it was built from.
package htmlview

import (
	"fmt"
	"io"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/muurk/xamlrt/internal/uitree"
)

// Builder produces one gomponents node per renderable tree node. Grid
// definitions and Unknown nodes have no HTML and drop their scope.
type Builder struct {
	uitree.NopVisitor
	scopes uitree.ScopeStack[g.Node]
	root   g.Node
}

// Build walks tree and returns the HTML fragment for its root.
func Build(tree *uitree.Tree) (g.Node, error) {
	b := &Builder{}
	if err := tree.Walk(b); err != nil {
		return nil, err
	}
	if b.root == nil {
		r, _ := tree.Root()
		return nil, fmt.Errorf("root element %s has no HTML representation", r.ElementName())
	}
	return b.root, nil
}

// Root returns the fragment left after the walk.
func (b *Builder) Root() (g.Node, bool) {
	return b.root, b.root != nil
}

func (b *Builder) open() { b.scopes.Enter() }

func (b *Builder) emit(n g.Node) {
	if !b.scopes.Emit(n) {
		b.root = n
	}
}

func (b *Builder) discard() { b.scopes.Leave() }

// attrs returns the class, node id and style every element carries. The
// style joins the attached grid cell, if any, with the given declarations.
func attrs(n *uitree.Node, class string, style ...string) g.Group {
	out := g.Group{
		h.Class(class),
		g.Attr("data-node-id", string(n.ID())),
	}
	_, hasRow := n.Attribute("Grid.Row")
	_, hasCol := n.Attribute("Grid.Column")
	if hasRow || hasCol {
		row, col := uitree.GridCell(n)
		style = append([]string{fmt.Sprintf("grid-row:%d;grid-column:%d", row+1, col+1)}, style...)
	}
	if len(style) > 0 {
		out = append(out, g.Attr("style", strings.Join(style, ";")))
	}
	return out
}

func (b *Builder) StartVisitWindow(uitree.Window) { b.open() }

func (b *Builder) VisitWindow(w uitree.Window) {
	children := b.scopes.Leave()
	b.emit(h.Div(attrs(w.Node, "window", fmt.Sprintf("width:%dpx;min-height:%dpx", w.Width(), w.Height())),
		h.H1(g.Text(w.Title())),
		g.Group(children),
	))
}

func (b *Builder) StartVisitContentPage(uitree.ContentPage) { b.open() }

func (b *Builder) VisitContentPage(p uitree.ContentPage) {
	children := b.scopes.Leave()
	b.emit(h.Div(attrs(p.Node, "page"),
		h.H1(g.Text(p.Title())),
		g.Group(children),
	))
}

func (b *Builder) StartVisitLabel(uitree.Label) { b.open() }

func (b *Builder) VisitLabel(l uitree.Label) {
	b.scopes.Leave()
	b.emit(h.Span(attrs(l.Node, "label"), g.Text(l.Text())))
}

func (b *Builder) StartVisitTextBlock(uitree.TextBlock) { b.open() }

func (b *Builder) VisitTextBlock(t uitree.TextBlock) {
	b.scopes.Leave()
	var style []string
	if w := t.FontWeight(); w != "" {
		style = append(style, "font-weight:"+strings.ToLower(w))
	}
	if c := t.Foreground(); c != "" {
		style = append(style, "color:"+c)
	}
	if s := t.FontSize(); s != "" {
		style = append(style, "font-size:"+s+"px")
	}
	b.emit(h.P(attrs(t.Node, "textblock", style...), g.Text(t.Text())))
}

func (b *Builder) StartVisitButton(uitree.Button) { b.open() }

func (b *Builder) VisitButton(btn uitree.Button) {
	b.scopes.Leave()
	b.emit(h.Button(attrs(btn.Node, "button"), h.Type("button"), g.Text(btn.Content())))
}

func (b *Builder) StartVisitStackLayout(uitree.StackLayout) { b.open() }

func (b *Builder) VisitStackLayout(s uitree.StackLayout) {
	children := b.scopes.Leave()
	class := "stack vertical"
	if s.Horizontal() {
		class = "stack horizontal"
	}
	b.emit(h.Div(attrs(s.Node, class), g.Group(children)))
}

func (b *Builder) StartVisitGrid(uitree.Grid) { b.open() }

func (b *Builder) VisitGrid(grid uitree.Grid) {
	children := b.scopes.Leave()
	class := "grid"
	if grid.ShowGridLines() {
		class += " lines"
	}

	var style []string
	if cols, ok := grid.ColumnDefinitions(); ok {
		style = append(style, "grid-template-columns:"+tracks(cols.Columns(), func(c uitree.ColumnDefinition) string { return c.Width() }))
	}
	if rows, ok := grid.RowDefinitions(); ok {
		style = append(style, "grid-template-rows:"+tracks(rows.Rows(), func(r uitree.RowDefinition) string { return r.Height() }))
	}
	if bg := grid.Background(); bg != "" {
		style = append(style, "background:"+bg)
	}
	b.emit(h.Div(attrs(grid.Node, class, style...), g.Group(children)))
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

// tracks converts grid sizes to CSS track sizes: "*" and "2*" become fr
// units, "Auto" stays auto and bare numbers are pixels.
func tracks[T any](defs []T, size func(T) string) string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, track(size(d)))
	}
	return strings.Join(out, " ")
}

func track(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "*":
		return "1fr"
	case strings.EqualFold(s, "auto"):
		return "auto"
	case strings.HasSuffix(s, "*"):
		return strings.TrimSuffix(s, "*") + "fr"
	default:
		return s + "px"
	}
}

const stylesheet = `body{font-family:sans-serif;margin:2em}
.window,.page{border:1px solid #7D56F4;border-radius:6px;padding:0 1em 1em}
.window h1,.page h1{font-size:1.1em;color:#7D56F4}
.stack{display:flex;gap:.5em}.stack.vertical{flex-direction:column;align-items:flex-start}
.grid{display:grid;gap:.5em}.grid.lines>*{outline:1px dashed #626262}
.label{display:inline-block}.textblock{margin:0}`

// script posts a Click event for any element carrying data-node-id and
// reloads the view so attribute changes show up.
const script = `document.addEventListener("click",function(e){
var el=e.target.closest("[data-node-id]");if(!el)return;
fetch("events",{method:"POST",headers:{"Content-Type":"application/json"},
body:JSON.stringify({node:el.dataset.nodeId,event:"Click"})}).then(function(){location.reload()});});`

// Page wraps the fragment for tree in a complete HTML document. Clicks are
// posted back to the events endpoint next to the page when interactive is
// set.
func Page(title string, tree *uitree.Tree, interactive bool) (g.Node, error) {
	body, err := Build(tree)
	if err != nil {
		return nil, err
	}
	var js g.Node
	if interactive {
		js = g.El("script", g.Raw(script))
	}
	return h.Doctype(
		h.HTML(
			h.Head(
				h.Meta(h.Charset("utf-8")),
				g.El("title", g.Text(title)),
				g.El("style", g.Raw(stylesheet)),
			),
			h.Body(body, js),
		),
	), nil
}

// Render writes the page for tree to w.
func Render(w io.Writer, title string, tree *uitree.Tree, interactive bool) error {
	page, err := Page(title, tree, interactive)
	if err != nil {
		return err
	}
	return page.Render(w)
}
