package uitree

import (
	"testing"
)

func TestAssembleScenario(t *testing.T) {
	tree := mustAssemble(t, scenarioTokens())

	root, ok := tree.Root()
	if !ok {
		t.Fatal("tree has no root")
	}
	if root.Kind() != KindWindow {
		t.Errorf("root kind = %v, want Window", root.Kind())
	}
	if root.ID() != "node-1" {
		t.Errorf("root id = %s, want node-1", root.ID())
	}

	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("root has %d children, want 2", len(children))
	}
	if children[0].Kind() != KindLabel || children[1].Kind() != KindButton {
		t.Errorf("children kinds = %v, %v; want Label, Button", children[0].Kind(), children[1].Kind())
	}
	if got := (Label{children[0]}).Text(); got != "Hi" {
		t.Errorf("label text = %q, want Hi", got)
	}
	if got, _ := children[1].Attribute("Button.Click"); got != "OnGo" {
		t.Errorf("Button.Click = %q, want OnGo", got)
	}
	if _, ok := children[1].Attribute("Click"); ok {
		t.Error("raw attribute names must be namespaced")
	}
	for _, c := range children {
		p, ok := c.Parent()
		if !ok || p != root {
			t.Errorf("%s parent = %v, want root", c.ID(), p)
		}
	}
	if !root.IsRoot() {
		t.Error("root should have no parent")
	}
}

func TestAssembleIDsUnique(t *testing.T) {
	tokens := []Token{start("Grid")}
	for i := 0; i < 20; i++ {
		tokens = append(tokens, start("StackPanel"), start("Label"), end("Label"), end("StackPanel"))
	}
	tokens = append(tokens, end("Grid"))

	tree := mustAssemble(t, tokens)

	seen := make(map[NodeID]bool)
	for _, n := range tree.Nodes() {
		if seen[n.ID()] {
			t.Fatalf("duplicate id %s", n.ID())
		}
		seen[n.ID()] = true
	}
	if len(seen) != 41 {
		t.Errorf("got %d ids, want 41", len(seen))
	}
}

func TestAssembleSingleOwnership(t *testing.T) {
	tree := mustAssemble(t, scenarioTokens())
	root, _ := tree.Root()

	parents := make(map[NodeID]int)
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children() {
			parents[c.ID()]++
			walk(c)
		}
	}
	walk(root)

	for id, count := range parents {
		if count != 1 {
			t.Errorf("node %s owned by %d parents", id, count)
		}
	}
	if len(parents) != tree.Len()-1 {
		t.Errorf("%d nodes reachable as children, want %d", len(parents), tree.Len()-1)
	}
}

func TestAssembleContent(t *testing.T) {
	tree := mustAssemble(t, []Token{
		start("StackPanel"),
		start("TextBlock"), text("  Hello  "), end("TextBlock"),
		start("Label"), text("Caption"), end("Label"),
		start("Button"), text("Press"), end("Button"),
		start("Grid"), text("ignored"), end("Grid"),
		end("StackPanel"),
	})

	tests := []struct {
		id   NodeID
		key  string
		want string
		ok   bool
	}{
		{"node-2", "TextBlock.Text", "Hello", true},
		{"node-3", "Label.Text", "Caption", true},
		{"node-4", "Button.Content", "Press", true},
		{"node-5", "Grid.Text", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, ok := mustNode(t, tree, tt.id).Attribute(tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Attribute(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAssembleElementKinds(t *testing.T) {
	tree := mustAssemble(t, []Token{
		start("ContentPage"),
		start("Grid"),
		start("Grid.ColumnDefinitions"), start("ColumnDefinition", "Width", "*"), end("ColumnDefinition"), end("Grid.ColumnDefinitions"),
		start("Grid.RowDefinitions"), start("RowDefinition", "Height", "Auto"), end("RowDefinition"), end("Grid.RowDefinitions"),
		end("Grid"),
		start("StackLayout"), end("StackLayout"),
		start("Border"), end("Border"),
		end("ContentPage"),
	})

	want := []Kind{
		KindContentPage, KindGrid,
		KindGridColumnDefinitions, KindColumnDefinition,
		KindGridRowDefinitions, KindRowDefinition,
		KindStackLayout, KindUnknown,
	}
	nodes := tree.Nodes()
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Kind() != want[i] {
			t.Errorf("node %d kind = %v, want %v", i, n.Kind(), want[i])
		}
	}

	if got, _ := nodes[3].Attribute("ColumnDefinition.Width"); got != "*" {
		t.Errorf("ColumnDefinition.Width = %q, want *", got)
	}
	if nodes[7].ElementName() != "Border" || nodes[7].TypeName() != "Border" {
		t.Errorf("unknown node element/type = %q/%q, want Border", nodes[7].ElementName(), nodes[7].TypeName())
	}
}

func TestAssembleStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   ErrorType
	}{
		{
			name:   "empty document",
			tokens: []Token{text("   ")},
			want:   ErrTypeEmptyDocument,
		},
		{
			name:   "end without start",
			tokens: []Token{end("Window")},
			want:   ErrTypeUnbalanced,
		},
		{
			name:   "mismatched end",
			tokens: []Token{start("Window"), start("Label"), end("Window")},
			want:   ErrTypeMismatchedEnd,
		},
		{
			name:   "second root",
			tokens: []Token{start("Window"), end("Window"), start("Window"), end("Window")},
			want:   ErrTypeMultipleRoots,
		},
		{
			name:   "unterminated child",
			tokens: []Token{start("Window"), start("Label")},
			want:   ErrTypeUnterminated,
		},
		{
			name:   "unterminated root",
			tokens: []Token{start("Window")},
			want:   ErrTypeUnterminated,
		},
		{
			name:   "extra end after root",
			tokens: []Token{start("Window"), end("Window"), end("Window")},
			want:   ErrTypeUnbalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Assemble(tt.tokens)
			if err == nil {
				t.Fatal("Assemble() expected error")
			}
			if tree != nil {
				t.Error("no partial tree may be returned with an error")
			}
			if !IsAssemblyError(err, tt.want) {
				t.Errorf("error = %v, want type %v", err, tt.want)
			}
		})
	}
}

func TestAssemblerErrorIsSticky(t *testing.T) {
	a := NewAssembler()
	if err := a.EndElement("Window"); err == nil {
		t.Fatal("EndElement() expected error")
	}
	if err := a.StartElement("Window", nil); err == nil {
		t.Error("StartElement() after failure should return the first error")
	}
	if _, err := a.Finish(); !IsAssemblyError(err, ErrTypeUnbalanced) {
		t.Errorf("Finish() error = %v, want unbalanced", err)
	}
}
