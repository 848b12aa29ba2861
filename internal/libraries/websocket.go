package libraries

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// WebSocketMessageType names the events exchanged with board subscribers.
type WebSocketMessageType string

const (
	WebSocketMessageTypePing         WebSocketMessageType = "ping"
	WebSocketMessageTypePong         WebSocketMessageType = "pong"
	WebSocketMessageTypeError        WebSocketMessageType = "error"
	WebSocketMessageTypeBoardSaved   WebSocketMessageType = "board_saved"
	WebSocketMessageTypeBoardDeleted WebSocketMessageType = "board_deleted"
)

// LocalsBoardID is the fiber local holding the board a socket subscribes to. It must be set
// by an earlier handler that checked ownership.
const LocalsBoardID = "ws_board_id"

const (
	sendBufferSize      = 64
	broadcastBufferSize = 256
)

type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

type BoardEventPayload struct {
	BoardId   string    `json:"board_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type Client struct {
	ID      string
	BoardID string
	Conn    *websocket.Conn
	Send    chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(boardID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:      uuid.NewString(),
		BoardID: boardID,
		Conn:    conn,
		Send:    make(chan []byte, sendBufferSize),
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// trySend queues payload without blocking. It reports false when the client is closed or its
// buffer is full.
func (c *Client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

type boardMessage struct {
	boardID string
	payload []byte
}

// Hub fans board events out to the sockets subscribed to that board. The client map is
// owned by the Run goroutine.
type Hub struct {
	clients    map[string]map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan boardMessage
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan boardMessage, broadcastBufferSize),
		done:       make(chan struct{}),
	}
}

// Register subscribes client to its board. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Run owns the subscriber map until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.clients {
				for _, client := range room {
					client.close()
				}
			}
			h.clients = make(map[string]map[string]*Client)
			return
		case client := <-h.register:
			room, ok := h.clients[client.BoardID]
			if !ok {
				room = make(map[string]*Client)
				h.clients[client.BoardID] = room
			}
			room[client.ID] = client
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			for _, client := range h.clients[message.boardID] {
				if !client.trySend(message.payload) {
					// slow subscriber, drop it rather than stall the hub
					log.WithField("client_id", client.ID).Warn("websocket send buffer full, disconnecting")
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	room, ok := h.clients[client.BoardID]
	if !ok {
		return
	}
	if _, exists := room[client.ID]; exists {
		delete(room, client.ID)
		client.close()
	}
	if len(room) == 0 {
		delete(h.clients, client.BoardID)
	}
}

// Publish queues an event for every subscriber of boardID. It never blocks the caller;
// events are dropped when the hub is saturated.
func (h *Hub) Publish(boardID string, eventType WebSocketMessageType, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: eventType, Data: data})
	if err != nil {
		log.WithError(err).Error("failed to marshal board event")
		return
	}
	select {
	case h.broadcast <- boardMessage{boardID: boardID, payload: payload}:
	default:
		log.WithField("board_id", boardID).Warn("board event dropped, hub saturated")
	}
}

// SendMessage queues a message for one client without blocking.
func (h *Hub) SendMessage(client *Client, eventType WebSocketMessageType, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: eventType, Data: data})
	if err != nil {
		log.WithError(err).Error("failed to marshal websocket message")
		return
	}
	if !client.trySend(payload) {
		log.WithField("client_id", client.ID).Debug("websocket message dropped")
	}
}

// parseWebSocketMessage parses incoming websocket message and returns the message structure
func parseWebSocketMessage(msg []byte) (*WebSocketMessage, error) {
	var message WebSocketMessage
	if err := json.Unmarshal(msg, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// WebSocketHandler subscribes the socket to the board stored in LocalsBoardID. Clients only
// talk ping/pong; board events flow from the server.
func WebSocketHandler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		boardID, _ := conn.Locals(LocalsBoardID).(string)
		client := NewClient(boardID, conn)
		if !hub.Register(client) {
			return
		}

		logger := log.WithFields(log.Fields{"client_id": client.ID, "board_id": boardID})

		// Write loop
		go func() {
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.WithError(err).Debug("websocket write failed")
					break
				}
			}
			conn.Close()
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				logger.WithError(err).Debug("websocket closed")
				break
			}

			message, err := parseWebSocketMessage(msg)
			if err != nil {
				hub.SendMessage(client, WebSocketMessageTypeError, &ErrorPayload{Message: "Invalid JSON format"})
				continue
			}
			if message.Type == WebSocketMessageTypePing {
				hub.SendMessage(client, WebSocketMessageTypePong, nil)
				continue
			}
			hub.SendMessage(client, WebSocketMessageTypeError, &ErrorPayload{Message: "Type is invalid or not provided"})
		}

		hub.Unregister(client)
	})
}
