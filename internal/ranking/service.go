package ranking

import (
	"context"
	"sort"
	"strings"
	"time"

	"sketchroom/internal/domain"
)

// Period selects which ranking view to build
type Period string

const (
	PeriodLive    Period = "LIVE"
	PeriodDaily   Period = "DAILY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
)

// ParsePeriod maps a raw query value to a period, defaulting to LIVE
func ParsePeriod(raw string) Period {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DAILY":
		return PeriodDaily
	case "WEEKLY":
		return PeriodWeekly
	case "MONTHLY":
		return PeriodMonthly
	default:
		return PeriodLive
	}
}

// UserLister is the slice of the user directory the ranking service needs
type UserLister interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	ResetAllScores(ctx context.Context) error
}

// SnapshotStore persists and queries score snapshots
type SnapshotStore interface {
	DeleteSnapshots(ctx context.Context, date time.Time, period domain.SnapshotPeriod) error
	SaveSnapshots(ctx context.Context, snapshots []domain.ScoreSnapshot) error
	LatestSnapshotDate(ctx context.Context, period domain.SnapshotPeriod) (time.Time, bool, error)
	SnapshotsOn(ctx context.Context, period domain.SnapshotPeriod, date time.Time) ([]domain.ScoreSnapshot, error)
	SnapshotsBetween(ctx context.Context, period domain.SnapshotPeriod, start, end time.Time) ([]domain.ScoreSnapshot, error)
}

// Service answers ranking queries over live scores and archived snapshots
type Service struct {
	users     UserLister
	snapshots SnapshotStore
	loc       *time.Location
	now       func() time.Time
}

// NewService creates a ranking service using loc for calendar boundaries
func NewService(users UserLister, snapshots SnapshotStore, loc *time.Location) *Service {
	return &Service{
		users:     users,
		snapshots: snapshots,
		loc:       loc,
		now:       time.Now,
	}
}

// Ranking builds the scoreboard for the requested period, highest score first
// and zero scores dropped
func (s *Service) Ranking(ctx context.Context, period Period) ([]domain.ScoreBoardEntry, error) {
	switch period {
	case PeriodDaily:
		return s.latestSnapshotRanking(ctx, domain.SnapshotDaily)
	case PeriodWeekly:
		return s.latestSnapshotRanking(ctx, domain.SnapshotWeekly)
	case PeriodMonthly:
		return s.monthlyAggregateRanking(ctx)
	default:
		return s.liveRanking(ctx)
	}
}

func (s *Service) liveRanking(ctx context.Context) ([]domain.ScoreBoardEntry, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ScoreBoardEntry, 0, len(users))
	for _, u := range users {
		if u.Score > 0 {
			entries = append(entries, domain.ScoreBoardEntry{Name: u.Name, Team: u.Team, Score: u.Score})
		}
	}
	sortByScore(entries)
	return entries, nil
}

func (s *Service) latestSnapshotRanking(ctx context.Context, period domain.SnapshotPeriod) ([]domain.ScoreBoardEntry, error) {
	latest, ok, err := s.snapshots.LatestSnapshotDate(ctx, period)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ScoreBoardEntry{}, nil
	}
	snaps, err := s.snapshots.SnapshotsOn(ctx, period, latest)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ScoreBoardEntry, 0, len(snaps))
	for _, snap := range snaps {
		if snap.Score > 0 {
			entries = append(entries, domain.ScoreBoardEntry{Name: snap.Username, Team: snap.Team, Score: snap.Score})
		}
	}
	sortByScore(entries)
	return entries, nil
}

// monthlyAggregateRanking sums this month's daily snapshots per user, so the
// monthly total survives the weekly score reset
func (s *Service) monthlyAggregateRanking(ctx context.Context) ([]domain.ScoreBoardEntry, error) {
	today := s.now().In(s.loc)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)

	snaps, err := s.snapshots.SnapshotsBetween(ctx, domain.SnapshotDaily, monthStart, today)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]*domain.ScoreBoardEntry)
	order := make([]int64, 0)
	for _, snap := range snaps {
		entry, ok := totals[snap.UserID]
		if !ok {
			entry = &domain.ScoreBoardEntry{Name: snap.Username, Team: snap.Team}
			totals[snap.UserID] = entry
			order = append(order, snap.UserID)
		}
		entry.Score += snap.Score
	}

	entries := make([]domain.ScoreBoardEntry, 0, len(order))
	for _, id := range order {
		if totals[id].Score > 0 {
			entries = append(entries, *totals[id])
		}
	}
	sortByScore(entries)
	return entries, nil
}

func sortByScore(entries []domain.ScoreBoardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
