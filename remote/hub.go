package remote

import (
	"log/slog"
	"sync"
)

// Hub tracks the connected clients of every surface and fans frames out to
// them.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[string]*Client // surfaceID -> clientID -> client
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

// Run processes registrations until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stop:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// Stop disconnects every client and ends Run.
func (h *Hub) Stop() {
	close(h.stop)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SurfaceID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[client.SurfaceID] = room
	}
	room[client.ClientID] = client
	h.mu.Unlock()

	slog.Info("client joined", "client", client.ClientID, "surface", client.SurfaceID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SurfaceID]
	if !ok || room[client.ClientID] != client {
		h.mu.Unlock()
		return
	}
	delete(room, client.ClientID)
	client.close()
	if len(room) == 0 {
		delete(h.rooms, client.SurfaceID)
	}
	h.mu.Unlock()

	slog.Info("client left", "client", client.ClientID, "surface", client.SurfaceID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room {
			c.close()
		}
		delete(h.rooms, id)
	}
}

// Watching reports whether any client is connected to surfaceID.
func (h *Hub) Watching(surfaceID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[surfaceID]) > 0
}

// Broadcast queues frame for every client of surfaceID.
func (h *Hub) Broadcast(surfaceID string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[surfaceID] {
		c.queue(outbound{binary: true, data: frame})
	}
}
