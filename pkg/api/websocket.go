package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// wsAcquireTimeout bounds how long a websocket message waits for a worker slot.
const wsAcquireTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "moves", "home", "position", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
	Code    string      `json:"code,omitempty"`    // Error code if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
}

// WebSocket handles WebSocket connections for interactive move queries.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			log.Debug().Err(err).Msg("websocket closed")
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "moves":
		var req MovesRequest
		wsServe(c, msg, &req, c.handlers.findMoves)
	case "home":
		var req HomeRequest
		wsServe(c, msg, &req, c.handlers.home)
	case "position":
		var req PositionRequest
		wsServe(c, msg, &req, c.handlers.position)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type", Code: "UNKNOWN_TYPE"}
	}
}

func (c *WSClient) sendError(id string, err *apiError) {
	c.sendChan <- WSResponse{Type: "error", ID: id, Error: err.msg, Code: err.code}
}

// wsServe decodes the payload into req, runs fn under a worker slot and
// sends the result.
func wsServe[Req, Resp any](c *WSClient, msg WSMessage, req *Req, fn func(*Req) (*Resp, *apiError)) {
	if err := json.Unmarshal(msg.Payload, req); err != nil {
		c.sendError(msg.ID, badRequest(errorCode(err), err))
		return
	}

	if pool := c.handlers.pool; pool != nil {
		// The connection context outlives single messages, so waits are bounded.
		if err := pool.AcquireWithTimeout(wsAcquireTimeout); err != nil {
			c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "server busy", Code: "SERVER_BUSY"}
			return
		}
		defer pool.Release()
	}

	resp, apiErr := fn(req)
	if apiErr != nil {
		c.sendError(msg.ID, apiErr)
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}
