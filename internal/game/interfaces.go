package game

import (
	"context"

	"sketchroom/internal/domain"
)

// Broadcast topics shared by every connected client
const (
	TopicChat        = "/topic/chat"
	TopicDraw        = "/topic/draw"
	TopicUndo        = "/topic/undo"
	TopicCanvasClear = "/topic/canvas/clear"
	TopicUsers       = "/topic/users"
	TopicScoreboard  = "/topic/scoreboard"
	TopicWordLen     = "/topic/wordlen"
)

// Private per-user queues
const (
	QueueWord        = "/queue/word"
	QueueErrors      = "/queue/errors"
	QueueDraw        = "/queue/draw"
	QueueCanvasClear = "/queue/canvas/clear"
	QueueUsers       = "/queue/users"
	QueueScoreboard  = "/queue/scoreboard"
	QueueWordLen     = "/queue/wordlen"
)

// Directory is the persisted user store. Role and score mutations go through
// it; the coordinator never owns the records.
type Directory interface {
	FindByName(ctx context.Context, name string) (*domain.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindByNamesIn(ctx context.Context, names []string) ([]domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, name string, role domain.Role) error
	DemoteDrawers(ctx context.Context) error
	IncrementScore(ctx context.Context, name string, delta int) error
}

// WordSource hands out secret words for new rounds
type WordSource interface {
	RandomWord(ctx context.Context) (string, error)
	RandomWordExcept(ctx context.Context, prev string) (string, error)
}

// Broadcaster is the fan-out sink. Delivery is fire-and-forget: a failure to
// reach one client never propagates back to the publishing call.
type Broadcaster interface {
	Publish(topic string, payload interface{})
	SendToUser(username, queue string, payload interface{})
}
