package uitree

import (
	"errors"
	"strings"

	"github.com/muurk/xamlrt/internal/logging"
)

// MethodRegistry maps method names to application callbacks. The tree only
// ever calls CallMethod with a name read from an attribute.
type MethodRegistry interface {
	CallMethod(name string) error
	Tree() *Tree
	SetTree(t *Tree)
}

// ErrNoRegistry is recorded for a matching attribute when the event carries
// no registry to call.
var ErrNoRegistry = errors.New("uitree: event has no method registry")

// Event is one UI interaction, identified by name ("Click" or the qualified
// "Button.Click").
type Event struct {
	Name     string
	Registry MethodRegistry
}

// NewEvent builds an event bound to registry.
func NewEvent(name string, registry MethodRegistry) Event {
	return Event{Name: name, Registry: registry}
}

// Firing records one matching attribute found while bubbling.
type Firing struct {
	Node   NodeID
	Key    string
	Method string
	Err    error
}

// Dispatch reports what bubbling one event did.
type Dispatch struct {
	Event   string
	Origin  NodeID
	Visited []NodeID
	Firings []Firing
}

// Failed returns the firings whose registry call returned an error.
func (d Dispatch) Failed() []Firing {
	var out []Firing
	for _, f := range d.Firings {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// EventKey returns the attribute key an event name resolves to on n.
// Unqualified names are namespaced by the node's type; qualified names are
// used verbatim.
func (n *Node) EventKey(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return Qualify(n.TypeName(), name)
}

// HandleEvent bubbles ev from n to the root. At every node on the way, a
// matching attribute is read as a method name and passed to the registry.
// Bubbling always continues to the root, whether or not a handler ran and
// whether or not it failed.
//
// Only one node lock is held at a time: the attribute and parent handle are
// read under the current node's read lock, which is released before the
// registry is called and before moving to the parent.
func (n *Node) HandleEvent(ev Event) Dispatch {
	d := Dispatch{Event: ev.Name, Origin: n.id}

	for cur := n; cur != nil; {
		key := cur.EventKey(ev.Name)

		cur.mu.RLock()
		method, ok := cur.attrs.Get(key)
		parent := cur.parent
		cur.mu.RUnlock()

		d.Visited = append(d.Visited, cur.id)

		if ok {
			var err error
			if ev.Registry == nil {
				err = ErrNoRegistry
			} else {
				err = ev.Registry.CallMethod(method)
			}
			logging.LogFiring(string(cur.id), key, method, err)
			d.Firings = append(d.Firings, Firing{Node: cur.id, Key: key, Method: method, Err: err})
		}

		next, found := cur.tree.Node(parent)
		if !found {
			break
		}
		cur = next
	}

	logging.LogDispatch(string(d.Origin), d.Event, len(d.Visited), len(d.Firings))
	return d
}
