package uitree

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoRoot is returned by operations that need a root on a tree without one.
var ErrNoRoot = errors.New("uitree: tree has no root")

// Tree owns every node of one parsed document in an arena and records which
// of them is the root. The arena only grows during assembly; afterwards the
// tree's shape is fixed and only attribute values change.
type Tree struct {
	mu    sync.RWMutex
	nodes []*Node
	byID  map[NodeID]Handle
	root  Handle
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		byID: make(map[NodeID]Handle),
		root: NoHandle,
	}
}

// NewNode allocates a node for element in the arena. The variant is chosen
// from the element name and attrs seed its store, namespaced by type name.
// The node is unattached until passed to AddChild or SetRoot.
func (t *Tree) NewNode(id NodeID, element string, attrs []Attr) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; exists {
		return nil, &AssemblyError{
			Type:    ErrTypeDuplicateID,
			Message: fmt.Sprintf("node id %q already in use", id),
			Element: element,
		}
	}

	n := &Node{
		tree:    t,
		handle:  Handle(len(t.nodes)),
		id:      id,
		kind:    KindForElement(element),
		element: element,
		parent:  NoHandle,
	}
	typeName := n.TypeName()
	for _, a := range attrs {
		n.attrs.Set(Qualify(typeName, a.Name), a.Value)
	}

	t.nodes = append(t.nodes, n)
	t.byID[id] = n.handle
	return n, nil
}

// Node resolves a handle.
func (t *Tree) Node(h Handle) (*Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if h < 0 || int(h) >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[h], true
}

// Root returns the root node.
func (t *Tree) Root() (*Node, bool) {
	t.mu.RLock()
	h := t.root
	t.mu.RUnlock()
	return t.Node(h)
}

// SetRoot marks n as the root of the tree.
func (t *Tree) SetRoot(n *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = n.handle
}

// Lookup resolves an id through the arena index without walking the tree.
func (t *Tree) Lookup(id NodeID) (*Node, bool) {
	t.mu.RLock()
	h, ok := t.byID[id]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return t.Node(h)
}

// FindByID searches the tree depth-first from the root.
func (t *Tree) FindByID(id NodeID) (*Node, bool) {
	root, ok := t.Root()
	if !ok {
		return nil, false
	}
	return root.FindByID(id)
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Nodes returns every node in allocation order.
func (t *Tree) Nodes() []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Walk drives v over the whole tree from the root.
func (t *Tree) Walk(v Visitor) error {
	root, ok := t.Root()
	if !ok {
		return ErrNoRoot
	}
	root.Accept(v)
	return nil
}

// Describe renders the whole tree as indented diagnostic text.
func (t *Tree) Describe() string {
	root, ok := t.Root()
	if !ok {
		return ""
	}
	return root.Describe(0)
}

// HandleEvent resolves id and bubbles ev from that node to the root.
func (t *Tree) HandleEvent(id NodeID, ev Event) (Dispatch, error) {
	n, ok := t.Lookup(id)
	if !ok {
		return Dispatch{Event: ev.Name, Origin: id}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n.HandleEvent(ev), nil
}

// ErrNodeNotFound is returned when an event targets an id the tree does not
// contain.
var ErrNodeNotFound = errors.New("uitree: node not found")
