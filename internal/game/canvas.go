package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sketchroom/internal/domain"
)

// Default canvas history bounds
const (
	DefaultMaxActions       = 1200
	DefaultMaxTotalSegments = 40000
	DefaultMaxActionAge     = 10 * time.Minute
)

// CanvasLimits bounds the drawing history buffer
type CanvasLimits struct {
	MaxActions       int
	MaxTotalSegments int
	MaxActionAge     time.Duration
}

// DefaultCanvasLimits returns the default history bounds
func DefaultCanvasLimits() CanvasLimits {
	return CanvasLimits{
		MaxActions:       DefaultMaxActions,
		MaxTotalSegments: DefaultMaxTotalSegments,
		MaxActionAge:     DefaultMaxActionAge,
	}
}

// Canvas is the bounded drawing-history buffer: an ordered sequence of stroke
// actions, each an ordered sequence of segments. All access is serialized by
// its own mutex, which is never held together with the round lock.
type Canvas struct {
	mu            sync.Mutex
	actions       []*domain.StrokeAction
	totalSegments int
	limits        CanvasLimits
	now           func() time.Time
}

// NewCanvas creates an empty canvas with the given bounds
func NewCanvas(limits CanvasLimits) *Canvas {
	return &Canvas{
		limits: limits,
		now:    time.Now,
	}
}

// Record normalizes and appends a segment and returns the stored form.
// Segments default to pen mode; a segment without an action id gets a fresh
// one and starts a new action. The returned segment is what gets broadcast.
func (c *Canvas) Record(seg domain.StrokeSegment) domain.StrokeSegment {
	if seg.Mode == "" {
		seg.Mode = "pen"
	}
	if seg.ActionID == "" {
		seg.ActionID = uuid.New().String()
		seg.NewStroke = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	last := c.lastActionLocked()
	if seg.NewStroke || last == nil || last.ID != seg.ActionID {
		c.actions = append(c.actions, &domain.StrokeAction{
			ID:        seg.ActionID,
			CreatedAt: c.now(),
			Segments:  []domain.StrokeSegment{seg},
		})
	} else {
		last.Segments = append(last.Segments, seg)
	}
	c.totalSegments++
	c.trimLocked()

	return seg
}

// UndoLast removes the most recently added action and returns its id
func (c *Canvas) UndoLast() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := c.lastActionLocked()
	if last == nil {
		return "", false
	}
	c.actions = c.actions[:len(c.actions)-1]
	c.totalSegments -= len(last.Segments)
	return last.ID, true
}

// Clear wipes the whole buffer
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions = nil
	c.totalSegments = 0
}

// Counts returns the current action and segment counts
func (c *Canvas) Counts() (actions, segments int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.actions), c.totalSegments
}

// Replay calls fn for every buffered segment in original append order, oldest
// action first. It holds the buffer lock for the whole walk so a concurrent
// mutation can never produce a torn snapshot.
func (c *Canvas) Replay(fn func(domain.StrokeSegment)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, action := range c.actions {
		for _, seg := range action.Segments {
			fn(seg)
		}
	}
}

func (c *Canvas) lastActionLocked() *domain.StrokeAction {
	if len(c.actions) == 0 {
		return nil
	}
	return c.actions[len(c.actions)-1]
}

// trimLocked evicts whole actions from the oldest end until the count,
// segment and age bounds all hold again.
func (c *Canvas) trimLocked() {
	now := c.now()
	for len(c.actions) > 0 {
		oldest := c.actions[0]
		overCount := len(c.actions) > c.limits.MaxActions
		overSegments := c.totalSegments > c.limits.MaxTotalSegments
		tooOld := now.Sub(oldest.CreatedAt) > c.limits.MaxActionAge
		if !overCount && !overSegments && !tooOld {
			break
		}
		c.actions = c.actions[1:]
		c.totalSegments -= len(oldest.Segments)
	}
	if c.totalSegments < 0 {
		c.totalSegments = 0
	}
}
