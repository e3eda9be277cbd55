package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ReloadMessage is sent to pages when the site has been regenerated.
const ReloadMessage = "reload"

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live reload websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]*websocket.Conn
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]*websocket.Conn)}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("livereload: websocket upgrade: %v", err)
		return
	}

	id, ok := h.add(conn)
	if !ok {
		conn.Close()
		return
	}
	defer h.remove(id)

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("livereload: client %s: %v", id, err)
			}
			return
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) (uuid.UUID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return uuid.Nil, false
	}
	id := uuid.New()
	h.clients[id] = conn
	log.Printf("livereload: client %s connected", id)
	return id, true
}

func (h *Hub) remove(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.clients[id]; ok {
		conn.Close()
		delete(h.clients, id)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every client and returns how many received it.
// Clients that fail are dropped.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for id, conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			log.Printf("livereload: dropping client %s: %v", id, err)
			conn.Close()
			delete(h.clients, id)
			continue
		}
		sent++
	}
	return sent
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, id)
	}
}
