package ws

import (
	"encoding/json"
	"time"
)

// MessageType represents the type of an inbound WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgChatSend    MessageType = "chat_send"
	MsgDrawStroke  MessageType = "draw_stroke"
	MsgDrawUndo    MessageType = "draw_undo"
	MsgCanvasClear MessageType = "canvas_clear"
	MsgWordReroll  MessageType = "word_reroll"
	MsgClaimDrawer MessageType = "claim_drawer"
	MsgSetDrawer   MessageType = "set_drawer"
	MsgStateSync   MessageType = "state_sync"
	MsgPing        MessageType = "ping"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage carries one payload to a destination topic or queue
type ServerMessage struct {
	Destination string      `json:"destination"`
	Payload     interface{} `json:"payload,omitempty"`
	Timestamp   string      `json:"timestamp"`
}

// NewServerMessage creates a server message with the current timestamp
func NewServerMessage(destination string, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Destination: destination,
		Payload:     payload,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// ChatSendPayload is the payload for chat_send
type ChatSendPayload struct {
	Text string `json:"text"`
}

// SetDrawerPayload is the payload for set_drawer
type SetDrawerPayload struct {
	Name string `json:"name"`
}

// Destination for pong replies to client pings
const destPong = "/queue/pong"
