package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Lectern/core/passage"
	"github.com/FocuswithJustin/Lectern/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
)

// PassageMessage is broadcast to every connected client whenever a
// resolution succeeds, so display clients can follow along live.
type PassageMessage struct {
	Type      string            `json:"type"` // "passages"
	SessionID string            `json:"session_id"`
	Passages  []passage.Passage `json:"passages"`
	Timestamp string            `json:"timestamp"`
}

// resultMessage is the direct reply to the client that sent an utterance.
type resultMessage struct {
	Type      string            `json:"type"` // "result"
	SessionID string            `json:"session_id"`
	Input     string            `json:"input"`
	Passages  []passage.Passage `json:"passages"`
}

// Client is one WebSocket connection. Each client gets its own resolver
// session, so its utterances carry their own conversational context.
type Client struct {
	hub       *Hub
	server    *Server
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains active WebSocket connections and broadcasts passages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop to handle client registration and
// broadcasting.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", len(h.clients))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client channel full, disconnect.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues a message for every connected client.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		logging.Warn("websocket broadcast channel full, dropping message")
	}
}

// broadcastPassages pushes a resolution to every connected display client.
func (s *Server) broadcastPassages(sessionID string, passages []passage.Passage) {
	msg := PassageMessage{
		Type:      "passages",
		SessionID: sessionID,
		Passages:  passages,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.hub.Broadcast(data)
}

// handleWebSocket upgrades the connection and starts the client pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}

	sessionID, _ := s.sessions.get(r.URL.Query().Get("session_id"))
	client := &Client{
		hub:       s.hub,
		server:    s,
		conn:      conn,
		send:      make(chan []byte, 64),
		sessionID: sessionID,
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump reads utterance frames, resolves them in the client's session
// and replies with the result. Successful resolutions also go to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("websocket read error", "error", err)
			}
			return
		}
		text := strings.TrimSpace(string(message))
		if text == "" {
			continue
		}

		_, session := c.server.sessions.get(c.sessionID)
		passages := session.Resolve(text)

		reply := resultMessage{
			Type:      "result",
			SessionID: c.sessionID,
			Input:     text,
			Passages:  passages,
		}
		if data, err := json.Marshal(reply); err == nil {
			select {
			case c.send <- data:
			default:
			}
		}

		if len(passages) > 0 {
			logging.ResolutionEvent(c.sessionID, text, passages[0].Reference())
			c.server.recordHistory(context.Background(), c.sessionID, text, passages[0])
			c.server.broadcastPassages(c.sessionID, passages)
		}
	}
}

// writePump forwards queued messages and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
