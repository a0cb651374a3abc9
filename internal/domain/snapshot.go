package domain

import "time"

// SnapshotPeriod tags a persisted score snapshot
type SnapshotPeriod string

const (
	SnapshotDaily  SnapshotPeriod = "DAILY"
	SnapshotWeekly SnapshotPeriod = "WEEKLY"
)

// ScoreSnapshot is one user's score captured by a scheduled batch run.
// Daily snapshots also feed the monthly aggregate ranking.
type ScoreSnapshot struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"userId"`
	Username     string         `json:"username"`
	Team         int            `json:"team"`
	Score        int            `json:"score"`
	SnapshotDate time.Time      `json:"snapshotDate"`
	Period       SnapshotPeriod `json:"period"`
	CreatedAt    time.Time      `json:"createdAt"`
}
