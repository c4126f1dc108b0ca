package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/muurk/xamlrt/internal/uitree"
)

// ErrMethodNotFound is returned by CallMethod for a name nothing registered.
var ErrMethodNotFound = errors.New("failed to find method")

// Method is an application callback bound to a name.
type Method func(r *Registry) error

// Registry maps method names to callbacks. It implements
// uitree.MethodRegistry.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Method
	names   map[string]string // folded -> name as registered
	tree    *uitree.Tree
	onQuit  func()
}

var _ uitree.MethodRegistry = (*Registry)(nil)

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		methods: make(map[string]Method),
		names:   make(map[string]string),
	}
}

func fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register binds name to m, replacing any method registered under the same
// name in any case.
func (r *Registry) Register(name string, m Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fold(name)
	r.methods[key] = m
	r.names[key] = name
}

// Has reports whether a method is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.methods[fold(name)]
	return ok
}

// Names returns the registered method names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// CallMethod runs the method registered under name. The registry lock is
// not held while the method runs, so methods may register or call others.
func (r *Registry) CallMethod(name string) error {
	r.mu.RLock()
	m, ok := r.methods[fold(name)]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrMethodNotFound, name)
	}
	if err := m(r); err != nil {
		return fmt.Errorf("method %s: %w", name, err)
	}
	return nil
}

// Tree returns the tree the registry serves, nil before SetTree.
func (r *Registry) Tree() *uitree.Tree {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree
}

// SetTree attaches the tree methods operate on.
func (r *Registry) SetTree(t *uitree.Tree) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree = t
}

// OnQuit sets the function quit actions call. The presentation loop installs
// one to stop itself.
func (r *Registry) OnQuit(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onQuit = fn
}

// Quit calls the installed quit function, if any.
func (r *Registry) Quit() {
	r.mu.RLock()
	fn := r.onQuit
	r.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
