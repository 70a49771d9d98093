package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
)

const (
	writeWait  = 5 * time.Second
	backlogCap = 64
)

// DayMessage is pushed to websocket clients on every render sync.
type DayMessage struct {
	Type string       `json:"type"` // "day"
	Day  timeline.Day `json:"day"`
}

// Hub fans render syncs out to websocket clients.
type Hub struct {
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	mutex     sync.Mutex
}

// NewHub creates a hub. allowedOrigin "*" or "" accepts any Origin.
func NewHub(allowedOrigin string) *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, backlogCap),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}
	return h
}

// PublishDay queues a day for every client. It never blocks: when the
// backlog is full the update is dropped, since the next sync supersedes it.
func (h *Hub) PublishDay(d timeline.Day) {
	msg, err := json.Marshal(DayMessage{Type: "day", Day: d})
	if err != nil {
		log.Printf("[server] encoding day %d: %v", d.Index, err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("[server] websocket backlog full, dropping day %d", d.Index)
	}
}

// Run delivers queued messages until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

// BroadcastMessage writes msg to every client, dropping those that fail.
func (h *Hub) BroadcastMessage(msg []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[server] dropping websocket client: %v", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// serve upgrades the connection, sends first (if any) and registers the
// client. Incoming messages are discarded; the read loop only detects
// disconnects.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, first []byte) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[server] websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	h.mutex.Lock()
	if first != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, first); err != nil {
			h.mutex.Unlock()
			return
		}
	}
	h.clients[conn] = true
	h.mutex.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			return
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		client.Close()
		delete(h.clients, client)
	}
}
