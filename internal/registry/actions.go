package registry

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/xamlrt/internal/config"
	"github.com/muurk/xamlrt/internal/logging"
	"github.com/muurk/xamlrt/internal/uitree"
)

// ErrNoTree is returned by set actions run before a tree is attached.
var ErrNoTree = errors.New("registry has no tree")

// FromActions registers one method per configured action.
func FromActions(r *Registry, actions map[string]*config.Action) error {
	for name, a := range actions {
		m, err := ActionMethod(name, a)
		if err != nil {
			return err
		}
		r.Register(name, m)
	}
	return nil
}

// ActionMethod builds the method a configured action performs.
func ActionMethod(name string, a *config.Action) (Method, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("method %q: %w", name, err)
	}

	switch strings.ToLower(a.Kind) {
	case config.ActionLog:
		msg := a.Message
		if msg == "" {
			msg = name
		}
		return func(*Registry) error {
			logging.Info(msg, zap.String("method", name))
			return nil
		}, nil

	case config.ActionSet:
		target, key, value := uitree.NodeID(a.Target), a.Key, a.Value
		return func(r *Registry) error {
			t := r.Tree()
			if t == nil {
				return ErrNoTree
			}
			n, ok := t.Lookup(target)
			if !ok {
				return fmt.Errorf("%w: %s", uitree.ErrNodeNotFound, target)
			}
			if strings.Contains(key, ".") {
				n.SetAttribute(key, value)
			} else {
				n.SetProperty(key, value)
			}
			logging.Debug("Attribute set",
				zap.String("method", name),
				zap.String("node", string(target)),
				zap.String("key", key),
				zap.String("value", value),
			)
			return nil
		}, nil

	default: // quit
		return func(r *Registry) error {
			logging.Debug("Quit requested", zap.String("method", name))
			r.Quit()
			return nil
		}, nil
	}
}
