package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/muurk/xamlrt/internal/config"
	"github.com/muurk/xamlrt/internal/uitree"
)

func scenarioTree(t *testing.T) *uitree.Tree {
	t.Helper()
	tree, err := uitree.Assemble([]uitree.Token{
		{Kind: uitree.TokenStart, Name: "Window"},
		{Kind: uitree.TokenStart, Name: "Label", Attrs: []uitree.Attr{{Name: "Text", Value: "Hi"}}},
		{Kind: uitree.TokenEnd, Name: "Label"},
		{Kind: uitree.TokenStart, Name: "Button", Attrs: []uitree.Attr{{Name: "Click", Value: "onGo"}}},
		{Kind: uitree.TokenEnd, Name: "Button"},
		{Kind: uitree.TokenEnd, Name: "Window"},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return tree
}

func TestCallMethodCaseInsensitive(t *testing.T) {
	reg := New()
	calls := 0
	reg.Register("OnGo", func(*Registry) error {
		calls++
		return nil
	})

	for _, name := range []string{"OnGo", "ongo", "ONGO", " OnGo "} {
		if err := reg.CallMethod(name); err != nil {
			t.Errorf("CallMethod(%q) error = %v", name, err)
		}
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	if !reg.Has("oNgO") {
		t.Error("Has() should match case-insensitively")
	}
}

func TestCallMethodNotFound(t *testing.T) {
	reg := New()
	err := reg.CallMethod("Missing")
	if !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("error = %v, want ErrMethodNotFound", err)
	}
	if err.Error() != "failed to find method: Missing" {
		t.Errorf("error text = %q", err.Error())
	}
}

func TestCallMethodWrapsFailure(t *testing.T) {
	boom := errors.New("boom")
	reg := New()
	reg.Register("OnFail", func(*Registry) error { return boom })

	if err := reg.CallMethod("OnFail"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
}

func TestRegisterReplaces(t *testing.T) {
	reg := New()
	var got string
	reg.Register("OnGo", func(*Registry) error { got = "first"; return nil })
	reg.Register("ONGO", func(*Registry) error { got = "second"; return nil })

	if err := reg.CallMethod("ongo"); err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Errorf("called %q, want second", got)
	}
	if names := reg.Names(); !reflect.DeepEqual(names, []string{"ONGO"}) {
		t.Errorf("Names() = %v, want [ONGO]", names)
	}
}

func TestMethodSeesTree(t *testing.T) {
	tree := scenarioTree(t)
	reg := New()
	reg.SetTree(tree)
	reg.Register("OnGo", func(r *Registry) error {
		n, ok := r.Tree().FindByID("node-2")
		if !ok {
			return uitree.ErrNodeNotFound
		}
		n.SetProperty("Text", "Going")
		return nil
	})

	d, err := tree.HandleEvent("node-3", uitree.NewEvent("Click", reg))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Failed()) != 0 {
		t.Fatalf("failures: %+v", d.Failed())
	}
	if got := (uitree.Label{Node: mustLookup(t, tree, "node-2")}).Text(); got != "Going" {
		t.Errorf("label text = %q, want Going", got)
	}
}

func TestFromActions(t *testing.T) {
	tree := scenarioTree(t)
	reg := New()
	reg.SetTree(tree)
	quit := 0
	reg.OnQuit(func() { quit++ })

	err := FromActions(reg, map[string]*config.Action{
		"OnLog":    {Kind: config.ActionLog, Message: "hello"},
		"OnRename": {Kind: config.ActionSet, Target: "node-2", Key: "Text", Value: "Renamed"},
		"OnTitle":  {Kind: config.ActionSet, Target: "node-1", Key: "Window.Title", Value: "New"},
		"OnQuit":   {Kind: "QUIT"},
	})
	if err != nil {
		t.Fatalf("FromActions() error = %v", err)
	}

	for _, name := range []string{"onlog", "OnRename", "OnTitle", "OnQuit"} {
		if err := reg.CallMethod(name); err != nil {
			t.Errorf("CallMethod(%s) error = %v", name, err)
		}
	}

	if got, _ := mustLookup(t, tree, "node-2").Attribute("Label.Text"); got != "Renamed" {
		t.Errorf("Label.Text = %q, want Renamed", got)
	}
	if got := (uitree.Window{Node: mustLookup(t, tree, "node-1")}).Title(); got != "New" {
		t.Errorf("Window title = %q, want New", got)
	}
	if quit != 1 {
		t.Errorf("quit called %d times, want 1", quit)
	}
}

func TestActionMethodErrors(t *testing.T) {
	tests := []struct {
		name    string
		action  *config.Action
		tree    bool
		wantErr error
	}{
		{"no tree", &config.Action{Kind: config.ActionSet, Target: "node-2", Key: "Text"}, false, ErrNoTree},
		{"unknown target", &config.Action{Kind: config.ActionSet, Target: "node-9", Key: "Text"}, true, uitree.ErrNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			if tt.tree {
				reg.SetTree(scenarioTree(t))
			}
			m, err := ActionMethod("OnSet", tt.action)
			if err != nil {
				t.Fatalf("ActionMethod() error = %v", err)
			}
			if err := m(reg); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := ActionMethod("OnBad", &config.Action{Kind: "explode"}); err == nil {
		t.Error("ActionMethod() should reject unknown actions")
	}
}

func mustLookup(t *testing.T, tree *uitree.Tree, id uitree.NodeID) *uitree.Node {
	t.Helper()
	n, ok := tree.Lookup(id)
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n
}
