package domain

import "time"

// StrokeSegment is one line segment of a drawer's pen gesture. Segments
// sharing an ActionID belong to the same continuous stroke.
type StrokeSegment struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Width     float64 `json:"width"`
	Color     string  `json:"color"`
	Mode      string  `json:"mode"`
	ActionID  string  `json:"actionId"`
	NewStroke bool    `json:"newStroke,omitempty"`
}

// StrokeAction groups the segments of one stroke. Segments are append-only;
// a recorded action is only ever removed whole.
type StrokeAction struct {
	ID        string
	CreatedAt time.Time
	Segments  []StrokeSegment
}
