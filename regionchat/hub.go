package regionchat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection inside a city room. Send is only ever
// written through select-with-done so a concurrent eviction cannot panic a
// writer; the hub signals shutdown by closing done, never by closing Send.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	done   chan struct{}
	City   string
	UserID string
}

func newClient(conn *websocket.Conn, city, userID string) *Client {
	return &Client{
		Conn:   conn,
		Send:   make(chan []byte, 256),
		done:   make(chan struct{}),
		City:   city,
		UserID: userID,
	}
}

// send delivers data unless the client has been evicted or disconnected.
func (c *Client) send(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return false
	}
}

type broadcastMsg struct {
	City string
	Data []byte
}

// Hub fans messages out to every client in the same city room.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.City] == nil {
				h.rooms[c.City] = make(map[*Client]bool)
			}
			h.rooms[c.City][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.City] {
				select {
				case c.Send <- m.Data:
				default:
					h.drop(c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			return
		}
	}
}

// drop removes a client from its room and signals its pumps to stop. Send is
// left open: closing it would race with the replay and read goroutines.
// Caller holds mu.
func (h *Hub) drop(c *Client) {
	conns := h.rooms[c.City]
	if conns == nil || !conns[c] {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.rooms, c.City)
	}
	close(c.done)
}

func (h *Hub) Stop() {
	close(h.quit)
}
