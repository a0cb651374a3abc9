package ranking

import (
	"context"
	"log/slog"
	"time"

	"sketchroom/internal/domain"
)

// Scheduler runs the snapshot batch jobs: a daily score snapshot at midnight
// and, on Mondays, a weekly snapshot followed by a score reset.
type Scheduler struct {
	users     UserLister
	snapshots SnapshotStore
	loc       *time.Location
	logger    *slog.Logger
	done      chan struct{}
	now       func() time.Time
}

// NewScheduler creates a scheduler; call Start to begin running jobs
func NewScheduler(users UserLister, snapshots SnapshotStore, loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		users:     users,
		snapshots: snapshots,
		loc:       loc,
		logger:    logger,
		done:      make(chan struct{}),
		now:       time.Now,
	}
}

// Start launches the midnight loop
func (s *Scheduler) Start() {
	go s.run()
}

// Stop terminates the loop
func (s *Scheduler) Stop() {
	close(s.done)
}

func (s *Scheduler) run() {
	for {
		next := s.nextMidnight()
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.done:
			timer.Stop()
			return
		case <-timer.C:
			ctx := context.Background()
			if err := s.RunDailySnapshot(ctx); err != nil {
				s.logger.Error("daily snapshot job failed", "error", err)
			}
			if next.Weekday() == time.Monday {
				if err := s.RunWeeklyReset(ctx); err != nil {
					s.logger.Error("weekly reset job failed", "error", err)
				}
			}
		}
	}
}

func (s *Scheduler) nextMidnight() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
}

// RunDailySnapshot archives every user's current score for today, replacing
// any snapshot already taken for the date
func (s *Scheduler) RunDailySnapshot(ctx context.Context) error {
	today := s.today()
	s.logger.Info("running daily score snapshot", "date", today.Format(time.DateOnly))
	return s.snapshot(ctx, today, domain.SnapshotDaily)
}

// RunWeeklyReset archives a weekly snapshot and then zeroes all scores
func (s *Scheduler) RunWeeklyReset(ctx context.Context) error {
	today := s.today()
	s.logger.Info("running weekly snapshot and score reset", "date", today.Format(time.DateOnly))
	if err := s.snapshot(ctx, today, domain.SnapshotWeekly); err != nil {
		return err
	}
	return s.users.ResetAllScores(ctx)
}

func (s *Scheduler) snapshot(ctx context.Context, date time.Time, period domain.SnapshotPeriod) error {
	if err := s.snapshots.DeleteSnapshots(ctx, date, period); err != nil {
		return err
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return err
	}

	snaps := make([]domain.ScoreSnapshot, 0, len(users))
	createdAt := s.now()
	for _, u := range users {
		snaps = append(snaps, domain.ScoreSnapshot{
			UserID:       u.ID,
			Username:     u.Name,
			Team:         u.Team,
			Score:        u.Score,
			SnapshotDate: date,
			Period:       period,
			CreatedAt:    createdAt,
		})
	}
	return s.snapshots.SaveSnapshots(ctx, snaps)
}

func (s *Scheduler) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}
