// Package session owns one running document: its tree, the registry its
// event attributes resolve against, and the instrumentation around dispatch.
//
// A Session is created once per loaded document and passed explicitly to
// every presentation layer (terminal program, remote server). There is no
// process-wide tree or registry.
package session

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/muurk/xamlrt/internal/logging"
	"github.com/muurk/xamlrt/internal/metrics"
	"github.com/muurk/xamlrt/internal/registry"
	"github.com/muurk/xamlrt/internal/uitree"
)

const tracerName = "github.com/muurk/xamlrt/internal/session"

// Session ties a tree to its registry.
type Session struct {
	name     string
	tree     *uitree.Tree
	registry *registry.Registry
	metrics  *metrics.Collector
	tracer   trace.Tracer
}

// Option configures a Session.
type Option func(*Session)

// WithMetrics records every dispatch on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Session) {
		s.metrics = c
	}
}

// WithTracerProvider traces dispatch with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Session) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// WithName labels the session in logs and announcements.
func WithName(name string) Option {
	return func(s *Session) {
		s.name = name
	}
}

// New binds tree and reg together. reg.Tree() returns tree afterwards.
func New(tree *uitree.Tree, reg *registry.Registry, opts ...Option) *Session {
	s := &Session{
		name:     "xamlrt",
		tree:     tree,
		registry: reg,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	reg.SetTree(tree)
	return s
}

// Name returns the session label.
func (s *Session) Name() string { return s.name }

// Tree returns the session's tree.
func (s *Session) Tree() *uitree.Tree { return s.tree }

// Registry returns the session's method registry.
func (s *Session) Registry() *registry.Registry { return s.registry }

// Metrics returns the collector dispatches are recorded on, or nil.
func (s *Session) Metrics() *metrics.Collector { return s.metrics }

// Dispatch raises event at the node with the given id and bubbles it to the
// root. Handler failures are reported in the returned Dispatch, not as an
// error; the error is only set when the node does not exist.
func (s *Session) Dispatch(ctx context.Context, id uitree.NodeID, event string) (uitree.Dispatch, error) {
	_, span := s.tracer.Start(ctx, "xamlrt.dispatch",
		trace.WithAttributes(
			attribute.String("xamlrt.session", s.name),
			attribute.String("xamlrt.node", string(id)),
			attribute.String("xamlrt.event", event),
		),
	)
	defer span.End()

	start := time.Now()
	d, err := s.tree.HandleEvent(id, uitree.NewEvent(event, s.registry))
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveDispatch(metrics.OtherEvent, "not_found", elapsed, 0, 0, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.Warn("Event target not found",
			zap.String("node", string(id)),
			zap.String("event", event),
		)
		return d, err
	}

	failed := d.Failed()
	s.metrics.ObserveDispatch(eventLabel(d), "ok", elapsed, len(d.Visited), len(d.Firings), len(failed))

	span.SetAttributes(
		attribute.Int("xamlrt.visited", len(d.Visited)),
		attribute.Int("xamlrt.fired", len(d.Firings)),
	)
	for _, f := range failed {
		span.RecordError(f.Err, trace.WithAttributes(
			attribute.String("xamlrt.method", f.Method),
			attribute.String("xamlrt.handler_node", string(f.Node)),
		))
	}
	if len(failed) > 0 {
		span.SetStatus(codes.Error, "handler failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return d, nil
}

// eventLabel keeps the metric label set bounded by the attribute keys the
// document declares.
func eventLabel(d uitree.Dispatch) string {
	if len(d.Firings) == 0 {
		return metrics.OtherEvent
	}
	return d.Event
}

// IsNotFound reports whether a Dispatch error means the target id was
// unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, uitree.ErrNodeNotFound)
}
