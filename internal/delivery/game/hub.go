package game

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"reversi_server/internal/domain/room"
)

// client wraps a websocket connection with a write lock, since the
// controller may emit from several goroutines (bot turns, other
// players' moves) at once.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(event room.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}

// Hub tracks live connections and their room membership and fans
// controller events out to them. It holds no game state.
type Hub struct {
	log     *zap.SugaredLogger
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]struct{}),
	}
}

// Register binds a connection to its participant id.
func (h *Hub) Register(participantID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[participantID] = &client{conn: conn}
}

// Remove drops the connection and every room membership it held.
func (h *Hub) Remove(participantID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, participantID)
	for roomID, members := range h.rooms {
		delete(members, participantID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) Subscribe(roomID, participantID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]struct{})
	}
	h.rooms[roomID][participantID] = struct{}{}
}

func (h *Hub) Unsubscribe(roomID, participantID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomID], participantID)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
}

// ToParticipant unicasts to a single connection, if still present.
func (h *Hub) ToParticipant(participantID string, event room.Event) {
	h.mu.RLock()
	c := h.clients[participantID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	if err := c.send(event); err != nil {
		h.log.Debugf("write %s to %s: %v", event.Type, participantID, err)
	}
}

// ToRoom broadcasts to every connection subscribed to the room.
func (h *Hub) ToRoom(roomID string, event room.Event) {
	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[roomID]))
	ids := make([]string, 0, len(h.rooms[roomID]))
	for id := range h.rooms[roomID] {
		if c := h.clients[id]; c != nil {
			members = append(members, c)
			ids = append(ids, id)
		}
	}
	h.mu.RUnlock()

	for i, c := range members {
		if err := c.send(event); err != nil {
			h.log.Debugf("broadcast %s to %s: %v", event.Type, ids[i], err)
		}
	}
}
