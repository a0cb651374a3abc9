package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sketchroom/internal/domain"
	"sketchroom/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents one user's WebSocket connection
type Client struct {
	conn     *websocket.Conn
	coord    *game.Coordinator
	broker   *Broker
	username string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, coord *game.Coordinator, broker *Broker, username string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		coord:    coord,
		broker:   broker,
		username: username,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Username returns the principal bound to this connection
func (c *Client) Username() string {
	return c.username
}

// Deliver queues a destination-addressed message for this client. A full
// buffer drops the message rather than blocking the publisher.
func (c *Client) Deliver(destination string, payload interface{}) error {
	data, err := json.Marshal(NewServerMessage(destination, payload))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn("send buffer full, message dropped", "user", c.username, "destination", destination)
		return nil
	}
}

// Close shuts the connection down idempotently
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.broker.Unregister(c.username, c)
		c.coord.Logout(context.Background(), c.username)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "user", c.username, "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches an inbound message to the coordinator. The sender
// is always the principal bound at connect time, never client-supplied.
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("invalid message format")
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case MsgChatSend:
		var payload ChatSendPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("invalid chat payload")
			return
		}
		if err := c.coord.HandleChat(ctx, c.username, payload.Text); err != nil {
			c.reportError(err)
		}
	case MsgDrawStroke:
		var seg domain.StrokeSegment
		if err := json.Unmarshal(msg.Payload, &seg); err != nil {
			c.sendError("invalid stroke payload")
			return
		}
		c.coord.AddStroke(ctx, c.username, seg)
	case MsgDrawUndo:
		c.coord.UndoLastStroke(ctx, c.username)
	case MsgCanvasClear:
		c.coord.ClearCanvas(ctx, c.username)
	case MsgWordReroll:
		if err := c.coord.RerollWord(ctx, c.username); err != nil {
			c.reportError(err)
		}
	case MsgClaimDrawer:
		if err := c.coord.ClaimDrawer(ctx, c.username); err != nil {
			c.reportError(err)
		}
	case MsgSetDrawer:
		var payload SetDrawerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Name == "" {
			c.sendError("target name is required")
			return
		}
		if err := c.coord.AssignDrawer(ctx, c.username, payload.Name); err != nil {
			c.reportError(err)
		}
	case MsgStateSync:
		c.coord.SendSnapshotTo(ctx, c.username)
	case MsgPing:
		c.Deliver(destPong, nil)
	default:
		c.sendError("unknown message type")
	}
}

// reportError routes a coordinator error to this user's private error queue,
// keeping the session alive
func (c *Client) reportError(err error) {
	var cooldown *domain.CooldownError
	switch {
	case errors.As(err, &cooldown):
		c.sendError(cooldown.Error())
	case errors.Is(err, domain.ErrUnknownUser),
		errors.Is(err, domain.ErrAdminOnly),
		errors.Is(err, domain.ErrWordPoolEmpty):
		c.sendError(err.Error())
	default:
		c.logger.Warn("handler error", "user", c.username, "error", err)
		c.sendError("unexpected error")
	}
}

// sendError delivers a message on the private error queue
func (c *Client) sendError(message string) {
	c.Deliver(game.QueueErrors, message)
}
