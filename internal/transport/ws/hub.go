// Package ws streams search progress/found/complete events to
// browser clients over WebSocket connections.
package ws

import (
	"log"
	"sync/atomic"
)

// Hub maintains the set of connected clients and fans outbound
// messages out to all of them. It is the out-of-core transport the
// search driver's Sink implementation (Broadcaster) publishes into.
type Hub struct {
	clients map[*client]bool

	broadcast  chan []byte
	register   chan *client
	unregister chan *client

	clientCount atomic.Int64

	log *log.Logger
}

// NewHub creates a Hub. Call Run in its own goroutine before serving
// any connections.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		log:        logger,
	}
}

// Run drives the hub's event loop until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case c := <-h.register:
			h.clients[c] = true
			h.clientCount.Store(int64(len(h.clients)))
			h.log.Printf("ws: client connected, total=%d", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.clientCount.Store(int64(len(h.clients)))
				h.log.Printf("ws: client disconnected, total=%d", len(h.clients))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
					h.clientCount.Store(int64(len(h.clients)))
				}
			}
		}
	}
}

// Broadcast enqueues msg for delivery to every connected client.
func (h *Hub) Broadcast(msg []byte) {
	h.broadcast <- msg
}

// ClientCount returns the number of currently registered clients.
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}
