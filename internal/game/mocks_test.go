package game

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// --- WordSource ---

type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) RandomWord(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockWordSource) RandomWordExcept(ctx context.Context, prev string) (string, error) {
	args := m.Called(ctx, prev)
	return args.String(0), args.Error(1)
}

// --- Broadcaster ---

// brokerCall is one recorded delivery
type brokerCall struct {
	dest    string
	payload interface{}
}

// recordingBroker captures every publish and private send for assertions
type recordingBroker struct {
	mu        sync.Mutex
	published []brokerCall
	private   map[string][]brokerCall
}

func newRecordingBroker() *recordingBroker {
	return &recordingBroker{private: make(map[string][]brokerCall)}
}

func (r *recordingBroker) Publish(topic string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, brokerCall{dest: topic, payload: payload})
}

func (r *recordingBroker) SendToUser(username, queue string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.private[username] = append(r.private[username], brokerCall{dest: queue, payload: payload})
}

// publishedTo returns the payloads published on one topic, in order
func (r *recordingBroker) publishedTo(topic string) []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payloads []interface{}
	for _, call := range r.published {
		if call.dest == topic {
			payloads = append(payloads, call.payload)
		}
	}
	return payloads
}

// sentTo returns the payloads privately delivered to one user's queue, in order
func (r *recordingBroker) sentTo(username, queue string) []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payloads []interface{}
	for _, call := range r.private[username] {
		if call.dest == queue {
			payloads = append(payloads, call.payload)
		}
	}
	return payloads
}

// sentAll returns every private delivery to one user, in order
func (r *recordingBroker) sentAll(username string) []brokerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]brokerCall(nil), r.private[username]...)
}

// reset forgets everything recorded so far
func (r *recordingBroker) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = nil
	r.private = make(map[string][]brokerCall)
}
