package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client raises events on a remote server over one websocket.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to target, which may be "host:port", an http(s) URL or a
// ws(s) URL. A missing path defaults to /ws.
func Dial(ctx context.Context, target string) (*Client, error) {
	u, err := WebSocketURL(target)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u, err)
	}
	return &Client{conn: conn}, nil
}

// Fire sends one request and waits for its reply.
func (c *Client) Fire(ctx context.Context, node, event string) (*Reply, error) {
	req := Request{Node: node, Event: event}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(writeWait)
	}
	_ = c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	_ = c.conn.SetReadDeadline(deadline)
	var reply Reply
	if err := c.conn.ReadJSON(&reply); err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	return &reply, nil
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// WebSocketURL normalizes target to a websocket URL.
func WebSocketURL(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("empty target address")
	}
	if !strings.Contains(target, "://") {
		target = "ws://" + target
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target %q: %w", target, err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid target %q: missing host", target)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}
