package uitree

import "strings"

// Attr is a raw markup attribute as delivered by the parser, before
// namespacing.
type Attr struct {
	Name  string
	Value string
}

// Attributes is a string-keyed property bag. Keys are unique and keep their
// first insertion order. The zero value is ready to use.
//
// Attributes does no locking of its own; a Node guards its store with the
// node lock.
type Attributes struct {
	keys   []string
	values map[string]string
}

// NewAttributes returns an empty store.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (string, bool) {
	if a.values == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// GetOr returns the value stored under key, or def when absent.
func (a *Attributes) GetOr(key, def string) string {
	if v, ok := a.Get(key); ok {
		return v
	}
	return def
}

// Set inserts or replaces the value stored under key.
func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Keys returns the keys in insertion order.
func (a *Attributes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of stored keys.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	c := NewAttributes()
	for _, k := range a.keys {
		c.Set(k, a.values[k])
	}
	return c
}

// Qualify namespaces a property name with a type name ("Button" + "Click"
// gives "Button.Click"). Names that already carry a namespace, such as the
// attached property "Grid.Row", are returned unchanged.
func Qualify(typeName, name string) string {
	if typeName == "" || strings.Contains(name, ".") {
		return name
	}
	return typeName + "." + name
}
