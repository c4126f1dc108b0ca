// Package registry resolves method names read from markup event attributes
// to application callbacks.
//
// A Registry is an explicit table built at registration time. Names are
// matched case-insensitively, so Click="ongo" and Click="OnGo" reach the same
// method. The registry also holds the tree it serves, which methods use to
// look up and mutate nodes.
//
//	reg := registry.New()
//	reg.Register("OnGo", func(r *registry.Registry) error {
//	    n, _ := r.Tree().FindByID("node-2")
//	    n.SetProperty("Text", "Going")
//	    return nil
//	})
//
// Methods can also be declared in the configuration file and installed with
// FromActions.
package registry
