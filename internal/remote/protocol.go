package remote

import (
	"errors"
	"fmt"

	"github.com/muurk/xamlrt/internal/uitree"
)

// Request raises Event at the node with id Node.
type Request struct {
	Node  string `json:"node"`
	Event string `json:"event"`
}

// Validate checks that both fields are present.
func (r Request) Validate() error {
	if r.Node == "" {
		return errors.New("request missing node")
	}
	if r.Event == "" {
		return errors.New("request missing event")
	}
	return nil
}

// FiredReport describes one handler invocation.
type FiredReport struct {
	Node   string `json:"node"`
	Method string `json:"method"`
	Error  string `json:"error,omitempty"`
}

// Reply is the outcome of one Request.
type Reply struct {
	Node    string        `json:"node"`
	Event   string        `json:"event"`
	Visited int           `json:"visited"`
	Fired   []FiredReport `json:"fired"`
	Error   string        `json:"error,omitempty"`
}

// Failed returns the fired handlers that reported an error.
func (r *Reply) Failed() []FiredReport {
	var out []FiredReport
	for _, f := range r.Fired {
		if f.Error != "" {
			out = append(out, f)
		}
	}
	return out
}

// String summarizes the reply on one line.
func (r *Reply) String() string {
	if r.Error != "" {
		return fmt.Sprintf("%s at %s: %s", r.Event, r.Node, r.Error)
	}
	return fmt.Sprintf("%s at %s: visited %d, fired %d, failed %d",
		r.Event, r.Node, r.Visited, len(r.Fired), len(r.Failed()))
}

// NewReply converts a dispatch outcome into its wire form.
func NewReply(req Request, d uitree.Dispatch, err error) *Reply {
	reply := &Reply{
		Node:    req.Node,
		Event:   req.Event,
		Visited: len(d.Visited),
		Fired:   make([]FiredReport, 0, len(d.Firings)),
	}
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	for _, f := range d.Firings {
		fr := FiredReport{Node: string(f.Node), Method: f.Method}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		reply.Fired = append(reply.Fired, fr)
	}
	return reply
}
