package ws

import (
	"log/slog"
	"sync"
)

// Broker fans server messages out to connected clients. It implements the
// coordinator's Broadcaster: topics reach everyone, queues reach one named
// user. Delivery is best effort; a slow or vanished client never blocks or
// fails the publisher.
type Broker struct {
	mu      sync.RWMutex
	clients map[string]*Client // username -> connection
	logger  *slog.Logger
}

// NewBroker creates an empty broker
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register binds a connection to a username, replacing any previous one
func (b *Broker) Register(username string, client *Client) {
	b.mu.Lock()
	old := b.clients[username]
	b.clients[username] = client
	b.mu.Unlock()

	if old != nil && old != client {
		old.Close()
	}
}

// Unregister removes the binding if it still points at this client
func (b *Broker) Unregister(username string, client *Client) {
	b.mu.Lock()
	if b.clients[username] == client {
		delete(b.clients, username)
	}
	b.mu.Unlock()
}

// Publish delivers a payload on a topic to every connected client
func (b *Broker) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for username, client := range b.clients {
		if err := client.Deliver(topic, payload); err != nil {
			b.logger.Debug("publish delivery failed", "user", username, "topic", topic, "error", err)
		}
	}
}

// SendToUser delivers a payload on a private queue to one named user.
// Unknown users are silently skipped.
func (b *Broker) SendToUser(username, queue string, payload interface{}) {
	b.mu.RLock()
	client, ok := b.clients[username]
	b.mu.RUnlock()

	if !ok {
		return
	}
	if err := client.Deliver(queue, payload); err != nil {
		b.logger.Debug("queue delivery failed", "user", username, "queue", queue, "error", err)
	}
}
