package uitree

import (
	"fmt"
	"sync"
	"testing"
)

// recordingRegistry records every method name it is asked to call.
type recordingRegistry struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
	tree  *Tree
}

func (r *recordingRegistry) CallMethod(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	if r.fail[name] {
		return fmt.Errorf("failed to find method: %s", name)
	}
	return nil
}

func (r *recordingRegistry) Tree() *Tree     { return r.tree }
func (r *recordingRegistry) SetTree(t *Tree) { r.tree = t }

func (r *recordingRegistry) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		return nil
	}
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func start(name string, attrs ...string) Token {
	tok := Token{Kind: TokenStart, Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		tok.Attrs = append(tok.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return tok
}

func end(name string) Token { return Token{Kind: TokenEnd, Name: name} }
func text(s string) Token   { return Token{Kind: TokenText, Text: s} }

// scenarioTokens is Window > Label(Text="Hi"), Button(Content="Go", Click="OnGo").
func scenarioTokens() []Token {
	return []Token{
		start("Window", "Title", "Demo"),
		text("\n  "),
		start("Label", "Text", "Hi"),
		end("Label"),
		start("Button", "Content", "Go", "Click", "OnGo"),
		end("Button"),
		text("\n"),
		end("Window"),
	}
}

func mustAssemble(t *testing.T, tokens []Token) *Tree {
	t.Helper()
	tree, err := Assemble(tokens)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return tree
}

func mustNode(t *testing.T, tree *Tree, id NodeID) *Node {
	t.Helper()
	n, ok := tree.FindByID(id)
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n
}
