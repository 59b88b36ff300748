// Package live broadcasts event state to connected clients over
// websockets so that voting screens and the stage display update
// without polling.
package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message types sent to clients.
const (
	MessageMatchStarted = "match.started"
	MessageMatchResults = "match.results"
	MessageMatchClosed  = "match.closed"
	MessageEventPhase   = "event.phase"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	// The API is origin-agnostic, CORS is handled at the HTTP layer
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one frame sent to all connected clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub maintains the set of active clients and broadcasts messages to
// them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan Message
	register   chan *client
	unregister chan *client
	once       sync.Once
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// DefaultHub is the hub used by the HTTP layer.
var DefaultHub = NewHub()

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Start begins the hub's main loop. Calling Start more than once is
// harmless.
func (h *Hub) Start() {
	h.once.Do(func() {
		go h.run()
	})
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			log.Debug().Int("clients", len(h.clients)).Msg("live client connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			log.Debug().Int("clients", len(h.clients)).Msg("live client disconnected")

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// The client cannot keep up, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues a message for all connected clients. It never
// blocks: when the hub is saturated or not running, the message is
// dropped. Clients always resynchronize from the REST API on connect.
func (h *Hub) Broadcast(messageType string, payload any) {
	select {
	case h.broadcast <- Message{Type: messageType, Payload: payload}:
	default:
		log.Debug().Str("type", messageType).Msg("live broadcast dropped")
	}
}

// ServeHTTP upgrades the connection and attaches it to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Start()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan Message, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// writePump forwards hub messages to the websocket connection.
func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(message); err != nil {
			return
		}
	}

	// The hub closed the channel
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards client messages. The API is write-only, reading is
// only needed to notice closed connections.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a message through the default hub.
func Broadcast(messageType string, payload any) {
	DefaultHub.Broadcast(messageType, payload)
}
