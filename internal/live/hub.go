package live

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Events pushed to connected dashboards.
const (
	EventOrderStatusUpdate = "orderStatusUpdate"
)

// Message is one event pushed over the live channel.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Hub fans broadcast messages out to every connected websocket client.
// Registration, unregistration and broadcasting all funnel through Run's
// single goroutine, so the clients map needs no lock.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan Message
}

// NewHub creates a hub with the given broadcast buffer. Broadcasts beyond
// the buffer are dropped rather than blocking the caller.
func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message, sendBuffer),
	}
}

// Run processes hub events until the context is cancelled. On shutdown every
// client send channel is closed, which terminates the write pumps.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			slog.Debug("Live client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			slog.Debug("Live client disconnected", "clients", len(h.clients))

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer, drop it rather than stall the hub.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. It never blocks;
// when the hub is saturated the event is dropped.
func (h *Hub) Broadcast(event string, payload any) {
	select {
	case h.broadcast <- Message{Event: event, Payload: payload}:
	default:
		slog.Warn("Live broadcast dropped", "event", event)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request to a websocket connection and attaches it
// to the hub.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}

	cl := newClient(h, conn)
	h.register <- cl
	cl.start()
}
