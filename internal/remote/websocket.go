package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/xamlrt/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// handleWebSocket upgrades the request and answers one Reply per Request
// until the peer goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	m := s.session.Metrics()
	remoteAddr := r.RemoteAddr

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.wg.Done()
		m.WebSocketError("upgrade")
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		_ = conn.Close()
		s.wg.Done()
		return
	}
	s.activeConns[conn] = remoteAddr
	s.mu.Unlock()
	m.ConnectionOpened()
	logging.LogConnection(remoteAddr, "websocket_upgraded")

	done := make(chan struct{})
	defer func() {
		close(done)
		_ = conn.Close()
		s.mu.Lock()
		delete(s.activeConns, conn)
		s.mu.Unlock()
		m.ConnectionClosed()
		logging.LogConnection(remoteAddr, "websocket_closed")
		s.wg.Done()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go s.ping(conn, done)

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.WebSocketError("read")
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := s.handleMessage(r, messageType, payload)

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			m.WebSocketError("write")
			logging.Error("Failed to write reply",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

// handleMessage decodes one frame and dispatches it. Malformed frames get an
// error reply; the connection stays open.
func (s *Server) handleMessage(r *http.Request, messageType int, payload []byte) *Reply {
	m := s.session.Metrics()
	if messageType != websocket.TextMessage {
		m.WebSocketError("decode")
		return &Reply{Error: fmt.Sprintf("unsupported message type %d", messageType)}
	}

	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		m.WebSocketError("decode")
		return &Reply{Error: fmt.Sprintf("decode request: %v", err)}
	}
	if err := req.Validate(); err != nil {
		m.WebSocketError("decode")
		return &Reply{Node: req.Node, Event: req.Event, Error: err.Error()}
	}

	logging.Debug("WebSocket request received",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("node", req.Node),
		zap.String("event", req.Event),
	)
	reply, _ := s.dispatch(r.Context(), req)
	return reply
}

// ping keeps the read deadline alive on idle connections.
func (s *Server) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
