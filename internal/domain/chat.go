package domain

// ChatMessage is a chat line broadcast to all clients
type ChatMessage struct {
	From   string `json:"from"`
	Text   string `json:"text"`
	System bool   `json:"system"`
}

// UndoNotice tells clients which stroke action to replay locally as undone
type UndoNotice struct {
	ActionID string `json:"actionId"`
}
