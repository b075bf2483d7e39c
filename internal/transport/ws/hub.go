package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"adventcal/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgLeaderboardUpdate MessageType = "leaderboard_update"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// boardKey identifies one (day, gameType) leaderboard
func boardKey(day int, gameType model.GameType) string {
	return fmt.Sprintf("%d:%s", day, gameType)
}

// Hub fans leaderboard updates out to the viewers watching each board
type Hub struct {
	// board -> connection set
	viewers map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *boardMessage
}

// Connection represents one subscribed viewer
type Connection struct {
	Board  string
	UserID string
	Send   chan []byte
}

type boardMessage struct {
	Board   string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub() *Hub {
	h := &Hub{
		viewers:    make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *boardMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.viewers[conn.Board] == nil {
				h.viewers[conn.Board] = make(map[*Connection]struct{})
			}
			h.viewers[conn.Board][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("Viewer %s subscribed to board %s", conn.UserID, conn.Board)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.viewers[conn.Board]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.viewers, conn.Board)
					}
					log.Printf("Viewer %s left board %s", conn.UserID, conn.Board)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.viewers[msg.Board] {
				select {
				case conn.Send <- data:
				default:
					// drop when the viewer's buffer is full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastLeaderboard pushes a fresh board to its viewers (implements
// service.Broadcaster)
func (h *Hub) BroadcastLeaderboard(day int, gameType model.GameType, entries []model.LeaderboardEntry) {
	data, _ := json.Marshal(map[string]interface{}{
		"day":         day,
		"gameType":    gameType,
		"leaderboard": entries,
	})
	h.broadcast <- &boardMessage{
		Board: boardKey(day, gameType),
		Message: &Message{
			Type:    MsgLeaderboardUpdate,
			Payload: data,
		},
	}
}
