// Package ws is the broadcast side of the service: a hub that owns the
// set of connected observers and fans every published event out to all
// of them. Delivery is at-most-once per connected observer, with no
// replay; an observer that connects after an event missed it for good.
package ws

import (
	"encoding/json"
	"log"
)

// Envelope is the wire shape of a broadcast frame.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is the observer registry. All registry mutation happens in the run
// loop, so connection lifecycle never races with a broadcast and never
// blocks on task-service activity.
type Hub struct {
	logger *log.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	clients    map[*Client]struct{}
	sendBuffer int
}

func NewHub(logger *log.Logger, sendBuffer, broadcastBuffer int) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	if broadcastBuffer <= 0 {
		broadcastBuffer = 256
	}
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		sendBuffer: sendBuffer,
	}
}

// Publish marshals the envelope once and hands it to the run loop, so
// every observer receives identical bytes. It never blocks the caller
// and never reports delivery failure.
func (h *Hub) Publish(event string, data any) {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Printf("ws: marshal %s event: %v", event, err)
		return
	}
	select {
	case h.broadcast <- frame:
	case <-h.done:
	}
}

// Run owns the client set. Frames are fanned out in the order they were
// published; per-client send queues keep that order per observer.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.logger.Printf("ws: observer %s connected (%d total)", c.id, len(h.clients))
		case c := <-h.unregister:
			h.drop(c)
		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Observer can't keep up; drop it rather than
					// stalling everyone else.
					h.logger.Printf("ws: observer %s too slow, dropping", c.id)
					h.drop(c)
				}
			}
		case <-h.done:
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

// Close stops the run loop and disconnects every observer.
func (h *Hub) Close() {
	close(h.done)
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Printf("ws: observer %s disconnected (%d left)", c.id, len(h.clients))
}
