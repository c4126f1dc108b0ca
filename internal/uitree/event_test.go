package uitree

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

// chainTokens is Grid(Click=OnRoot) > StackPanel(Click=OnA) > StackPanel > Button.
func chainTokens() []Token {
	return []Token{
		start("Grid", "Click", "OnRoot"),
		start("StackPanel", "Click", "OnA"),
		start("StackPanel"),
		start("Button", "Content", "Go"),
		end("Button"),
		end("StackPanel"),
		end("StackPanel"),
		end("Grid"),
	}
}

func TestHandleEventBubblesToRoot(t *testing.T) {
	tree := mustAssemble(t, chainTokens())
	reg := &recordingRegistry{}

	button := mustNode(t, tree, "node-4")
	d := button.HandleEvent(NewEvent("Click", reg))

	wantVisited := []NodeID{"node-4", "node-3", "node-2", "node-1"}
	if !reflect.DeepEqual(d.Visited, wantVisited) {
		t.Errorf("Visited = %v, want %v", d.Visited, wantVisited)
	}
	// Each node namespaces Click by its own type, so the Button and the
	// StackPanels resolve different keys.
	if got, want := reg.Calls(), []string{"OnA", "OnRoot"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if len(d.Firings) != 2 {
		t.Fatalf("got %d firings, want 2", len(d.Firings))
	}
	if d.Firings[0].Key != "StackLayout.Click" || d.Firings[1].Key != "Grid.Click" {
		t.Errorf("firing keys = %q, %q", d.Firings[0].Key, d.Firings[1].Key)
	}
}

func TestHandleEventScenario(t *testing.T) {
	tree := mustAssemble(t, scenarioTokens())
	reg := &recordingRegistry{}

	d, err := tree.HandleEvent("node-3", NewEvent("Click", reg))
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if got := reg.Calls(); !reflect.DeepEqual(got, []string{"OnGo"}) {
		t.Errorf("calls = %v, want [OnGo]", got)
	}
	if want := []NodeID{"node-3", "node-1"}; !reflect.DeepEqual(d.Visited, want) {
		t.Errorf("Visited = %v, want %v", d.Visited, want)
	}
	if len(d.Failed()) != 0 {
		t.Errorf("unexpected failures: %v", d.Failed())
	}
}

func TestHandleEventQualifiedName(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  []string
	}{
		{"unqualified matches own type only", "Click", []string{"OnA", "OnRoot"}},
		{"qualified matches every node carrying the key", "Grid.Click", []string{"OnRoot"}},
		{"qualified stack layout key", "StackLayout.Click", []string{"OnA"}},
		{"no match anywhere", "Hover", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustAssemble(t, chainTokens())
			reg := &recordingRegistry{}

			d, err := tree.HandleEvent("node-4", NewEvent(tt.event, reg))
			if err != nil {
				t.Fatalf("HandleEvent() error = %v", err)
			}
			if got := reg.Calls(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("calls = %v, want %v", got, tt.want)
			}
			if len(d.Visited) != 4 {
				t.Errorf("visited %d nodes, want 4", len(d.Visited))
			}
		})
	}
}

func TestHandleEventContinuesAfterFailure(t *testing.T) {
	tree := mustAssemble(t, chainTokens())
	reg := &recordingRegistry{fail: map[string]bool{"OnA": true}}

	d, err := tree.HandleEvent("node-4", NewEvent("Click", reg))
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if got := reg.Calls(); !reflect.DeepEqual(got, []string{"OnA", "OnRoot"}) {
		t.Errorf("calls = %v, want [OnA OnRoot]", got)
	}
	failed := d.Failed()
	if len(failed) != 1 || failed[0].Method != "OnA" || failed[0].Node != "node-2" {
		t.Errorf("Failed() = %+v, want one failure of OnA on node-2", failed)
	}
}

func TestHandleEventWithoutRegistry(t *testing.T) {
	tree := mustAssemble(t, scenarioTokens())

	d, err := tree.HandleEvent("node-3", NewEvent("Click", nil))
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if len(d.Firings) != 1 || !errors.Is(d.Firings[0].Err, ErrNoRegistry) {
		t.Errorf("Firings = %+v, want one ErrNoRegistry", d.Firings)
	}
}

func TestTreeHandleEventUnknownNode(t *testing.T) {
	tree := mustAssemble(t, scenarioTokens())

	d, err := tree.HandleEvent("node-99", NewEvent("Click", &recordingRegistry{}))
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("error = %v, want ErrNodeNotFound", err)
	}
	if d.Event != "Click" || d.Origin != "node-99" || len(d.Visited) != 0 {
		t.Errorf("Dispatch = %+v, want Click at node-99 with nothing visited", d)
	}
}

func TestHandleEventConcurrentWithWrites(t *testing.T) {
	tree := mustAssemble(t, chainTokens())
	reg := &recordingRegistry{}
	grid := mustNode(t, tree, "node-1")
	button := mustNode(t, tree, "node-4")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				button.HandleEvent(NewEvent("Click", reg))
			}
		}()
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				grid.SetAttribute("Grid.Background", fmt.Sprintf("#%02d%02d", i, j))
			}
		}(i)
	}
	wg.Wait()

	// Every dispatch reaches both handlers.
	if got := len(reg.Calls()); got != 8*50*2 {
		t.Errorf("got %d calls, want %d", got, 8*50*2)
	}
}

func TestEventKey(t *testing.T) {
	tree := mustAssemble(t, []Token{
		start("Window"), start("Border"), end("Border"), end("Window"),
	})

	tests := []struct {
		id   NodeID
		name string
		want string
	}{
		{"node-1", "Click", "Window.Click"},
		{"node-1", "Button.Click", "Button.Click"},
		{"node-2", "Click", "Border.Click"},
	}
	for _, tt := range tests {
		if got := mustNode(t, tree, tt.id).EventKey(tt.name); got != tt.want {
			t.Errorf("%s.EventKey(%q) = %q, want %q", tt.id, tt.name, got, tt.want)
		}
	}
}

func TestUnknownPassthrough(t *testing.T) {
	tree := mustAssemble(t, []Token{
		start("Window", "Click", "OnWin"),
		start("Border", "Click", "OnBorder"),
		start("Button", "Content", "Go", "Click", "OnBtn"),
		end("Button"),
		end("Border"),
		end("Window"),
	})

	border := mustNode(t, tree, "node-2")
	if border.Kind() != KindUnknown {
		t.Fatalf("Border kind = %v, want Unknown", border.Kind())
	}
	children := border.Children()
	if len(children) != 1 || children[0].ID() != "node-3" {
		t.Fatalf("Border children = %v, want [node-3]", children)
	}
	if p, ok := children[0].Parent(); !ok || p != border {
		t.Errorf("Button parent = %v, want Border", p)
	}

	v := &traceVisitor{}
	if err := tree.Walk(v); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	wantWalk := []string{
		"start:Window",
		"start:Unknown",
		"start:Button", "visit:Button",
		"visit:Unknown",
		"visit:Window",
	}
	if !reflect.DeepEqual(v.calls, wantWalk) {
		t.Errorf("walk = %v, want %v", v.calls, wantWalk)
	}

	reg := &recordingRegistry{}
	d, err := tree.HandleEvent("node-3", NewEvent("Click", reg))
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if got, want := reg.Calls(), []string{"OnBtn", "OnBorder", "OnWin"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if len(d.Firings) != 3 || d.Firings[1].Key != "Border.Click" {
		t.Errorf("Firings = %+v, want Border.Click second of three", d.Firings)
	}
}
