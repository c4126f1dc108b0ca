package uitree

import (
	"strconv"
	"strings"
	"sync"
)

// Handle addresses a node inside its tree's arena.
type Handle int

// NoHandle is the parent handle of a root or unattached node.
const NoHandle Handle = -1

// NodeID is the identity assigned to a node by the assembler. It is unique
// within one tree.
type NodeID string

// Node is the substrate shared by every variant: identity, attribute store,
// ordered children and a parent back-reference, all addressed through the
// owning tree's arena.
//
// Each node carries its own lock. Operations hold at most one node lock at a
// time, except AddChild, which locks the parent and then the child.
type Node struct {
	tree    *Tree
	handle  Handle
	id      NodeID
	kind    Kind
	element string

	mu       sync.RWMutex
	attrs    Attributes
	children []Handle
	parent   Handle
}

// ID returns the node identity.
func (n *Node) ID() NodeID { return n.id }

// Handle returns the node's arena handle.
func (n *Node) Handle() Handle { return n.handle }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// ElementName returns the local markup element name the node was built from.
func (n *Node) ElementName() string { return n.element }

// Tree returns the owning tree.
func (n *Node) Tree() *Tree { return n.tree }

// TypeName returns the namespace prefix for this node's properties.
func (n *Node) TypeName() string {
	if n.kind == KindUnknown {
		return n.element
	}
	return n.kind.TypeName()
}

// Parent returns the node that owns n, if any.
func (n *Node) Parent() (*Node, bool) {
	n.mu.RLock()
	p := n.parent
	n.mu.RUnlock()
	return n.tree.Node(p)
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent == NoHandle
}

// Children returns the children in document order.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	handles := make([]Handle, len(n.children))
	copy(handles, n.children)
	n.mu.RUnlock()

	out := make([]*Node, 0, len(handles))
	for _, h := range handles {
		if c, ok := n.tree.Node(h); ok {
			out = append(out, c)
		}
	}
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.children)
}

// AddChild appends child and points its parent back at n. It must be called
// exactly once per child; a second call for the same child is not detected.
func (n *Node) AddChild(child *Node) {
	if child == n {
		panic("uitree: node cannot adopt itself")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append(n.children, child.handle)
	child.setParent(n)
}

func (n *Node) setParent(p *Node) {
	n.mu.Lock()
	n.parent = p.handle
	n.mu.Unlock()
}

// Attribute returns the value stored under the exact key.
func (n *Node) Attribute(key string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attrs.Get(key)
}

// AttributeOr returns the value stored under key, or def.
func (n *Node) AttributeOr(key, def string) string {
	if v, ok := n.Attribute(key); ok {
		return v
	}
	return def
}

// SetAttribute upserts the value stored under the exact key.
func (n *Node) SetAttribute(key, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attrs.Set(key, value)
}

// Property reads name namespaced by the node's type ("Text" on a Label reads
// "Label.Text").
func (n *Node) Property(name string) (string, bool) {
	return n.Attribute(Qualify(n.TypeName(), name))
}

// PropertyOr reads a namespaced property with a default.
func (n *Node) PropertyOr(name, def string) string {
	if v, ok := n.Property(name); ok {
		return v
	}
	return def
}

// SetProperty writes name namespaced by the node's type.
func (n *Node) SetProperty(name, value string) {
	n.SetAttribute(Qualify(n.TypeName(), name), value)
}

// Attributes returns a snapshot of the store in insertion order.
func (n *Node) Attributes() []Attr {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Attr, 0, n.attrs.Len())
	for _, k := range n.attrs.keys {
		out = append(out, Attr{Name: k, Value: n.attrs.values[k]})
	}
	return out
}

// SetContent folds inline markup text into the node. Label and TextBlock
// store it as their Text, Button as its Content; other kinds ignore it.
func (n *Node) SetContent(text string) {
	if prop, ok := n.kind.contentProperty(); ok {
		n.SetProperty(prop, text)
	}
}

// Width returns the Width property parsed as an integer.
func (n *Node) Width() (int, bool) { return n.intProperty("Width") }

// Height returns the Height property parsed as an integer.
func (n *Node) Height() (int, bool) { return n.intProperty("Height") }

// SetWidth stores an integer Width property.
func (n *Node) SetWidth(v int) { n.SetProperty("Width", strconv.Itoa(v)) }

// SetHeight stores an integer Height property.
func (n *Node) SetHeight(v int) { n.SetProperty("Height", strconv.Itoa(v)) }

func (n *Node) intProperty(name string) (int, bool) {
	raw, ok := n.Property(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// FindByID searches depth-first: n itself, then each child subtree in
// document order.
func (n *Node) FindByID(id NodeID) (*Node, bool) {
	if n.id == id {
		return n, true
	}
	for _, c := range n.Children() {
		if found, ok := c.FindByID(id); ok {
			return found, true
		}
	}
	return nil, false
}

// Describe renders the subtree as indented diagnostic text, three spaces
// per depth level.
func (n *Node) Describe(indent int) string {
	var b strings.Builder
	n.describe(&b, indent)
	return b.String()
}

func (n *Node) describe(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("   ", indent))
	b.WriteString("DUMP: ")
	b.WriteString(n.kind.String())

	switch n.kind {
	case KindWindow, KindContentPage:
		b.WriteString("  -  title:")
		b.WriteString(n.PropertyOr("Title", DefaultTitle))
	case KindLabel, KindTextBlock:
		b.WriteString(" - content:")
		b.WriteString(n.PropertyOr("Text", ""))
	case KindButton:
		b.WriteString(" - content:")
		b.WriteString(n.PropertyOr("Content", ""))
	case KindUnknown:
		b.WriteString("(" + n.element + ")")
	}
	b.WriteString("\n")

	for _, c := range n.Children() {
		c.describe(b, indent+1)
	}
}
