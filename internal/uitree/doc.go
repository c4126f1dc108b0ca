// Package uitree is the UI element tree runtime: the node model built from a
// markup document, the two-phase visitor protocol used to turn the tree into
// a native widget hierarchy, and the bubbling dispatch that routes UI events
// back to application methods by name.
//
// # Node Model
//
// A Tree owns its nodes in an arena and addresses them by Handle. Every node
// shares one substrate (identity, attribute store, ordered children, parent
// handle) and carries a Kind from a closed set. Typed views such as Window or
// Button expose variant accessors over namespaced attribute lookups:
//
//	win, _ := tree.Root()
//	title := uitree.Window{Node: win}.Title()
//
// Attributes are namespaced with the element's type name when the tree is
// assembled, so Click on a Button is stored as "Button.Click". Attached
// properties that already carry a namespace ("Grid.Row") are stored as
// written.
//
// # Assembly
//
// An Assembler consumes start/end/characters events from a markup reader,
// allocates sequential ids and attaches each node to the element currently
// open. Structural problems are reported as *AssemblyError and no partial
// tree is returned. Unrecognised element names become Unknown nodes.
//
// # Visiting
//
// Accept calls StartVisit<Kind> on entry, visits children in document order,
// then calls Visit<Kind> on exit. Builders pair it with ScopeStack:
//
//	func (b *Builder) StartVisitLabel(uitree.Label) { b.scopes.Enter() }
//	func (b *Builder) VisitLabel(l uitree.Label) {
//	    b.scopes.Leave()
//	    b.emit(newLabelWidget(l))
//	}
//
// # Events
//
// HandleEvent walks from the origin node to the root. At every node whose
// store holds the event's key, the value is passed to the MethodRegistry as a
// method name. Bubbling never stops early: every matching ancestor fires.
//
// # Thread Safety
//
// Each node has its own lock and operations hold at most one node lock at a
// time (AddChild locks parent then child). The tree's shape is fixed after
// assembly; attribute reads and writes and event dispatch are safe from any
// goroutine.
package uitree
