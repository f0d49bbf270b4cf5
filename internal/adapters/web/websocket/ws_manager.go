package websocket

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lcalzada-xor/hsmap/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/hsmap/internal/core/domain"
	"github.com/lcalzada-xor/hsmap/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin requests carry no Origin header.
		return r.Header.Get("Origin") == ""
	},
}

// WSMessage is the envelope for every frame pushed to clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager pushes discovery events to connected clients. It implements
// ports.RegistryObserver.
type WSManager struct {
	Operators ports.OperatorRepository
	clients   map[*websocket.Conn]bool
	mu        sync.Mutex
}

// NewWSManager creates a manager with no connected clients.
func NewWSManager(operators ports.OperatorRepository) *WSManager {
	return &WSManager{
		Operators: operators,
		clients:   make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// peer goes away.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = true
	m.mu.Unlock()

	// Reader loop only to detect disconnects; clients do not send data.
	go func() {
		defer m.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// OnNetworkDiscovered implements ports.RegistryObserver.
func (m *WSManager) OnNetworkDiscovered(nd domain.NetworkDescriptor) {
	m.broadcast("network_discovered", nd)
}

// OnNetworkUpdated implements ports.RegistryObserver.
func (m *WSManager) OnNetworkUpdated(nd domain.NetworkDescriptor) {
	m.broadcast("network_updated", nd)
}

func (m *WSManager) broadcast(event string, nd domain.NetworkDescriptor) {
	payload := handlers.ToNetworkResponse(context.Background(), nd, m.Operators)
	msg := WSMessage{Type: event, Payload: payload}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(m.clients, conn)
		}
	}
}

func (m *WSManager) drop(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn.Close()
	delete(m.clients, conn)
}
