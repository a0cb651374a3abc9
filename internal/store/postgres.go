package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sketchroom/internal/domain"
)

// PostgresStore backs the user directory, the word pool and the score
// snapshot archive with a single pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool and verifies it with a ping
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

/* ------------------------------- users ------------------------------- */

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	u := domain.User{Name: name}
	row := s.pool.QueryRow(ctx,
		"SELECT id, team, score, COALESCE(role, '') FROM users WHERE name = $1", name)

	var role string
	err := row.Scan(&u.ID, &u.Team, &u.Score, &role)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrUnknownUser
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
		}
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (s *PostgresStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return exists, nil
}

func (s *PostgresStore) FindByNamesIn(ctx context.Context, names []string) ([]domain.User, error) {
	if len(names) == 0 {
		return []domain.User{}, nil
	}
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, team, score, COALESCE(role, '') FROM users WHERE name = ANY($1) ORDER BY name", names)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, team, score, COALESCE(role, '') FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *PostgresStore) UpdateRole(ctx context.Context, name string, role domain.Role) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET role = $2 WHERE name = $1", name, string(role))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownUser
	}
	return nil
}

func (s *PostgresStore) DemoteDrawers(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		"UPDATE users SET role = $1 WHERE role = $2",
		string(domain.RoleParticipant), string(domain.RoleDrawer))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) IncrementScore(ctx context.Context, name string, delta int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET score = score + $2 WHERE name = $1", name, delta)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownUser
	}
	return nil
}

func (s *PostgresStore) ResetAllScores(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "UPDATE users SET score = 0")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Team, &u.Score, &role); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
		}
		u.Role = domain.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return users, nil
}

/* ------------------------------- words ------------------------------- */

func (s *PostgresStore) RandomWord(ctx context.Context) (string, error) {
	var word string
	err := s.pool.QueryRow(ctx,
		"SELECT text FROM words ORDER BY RANDOM() LIMIT 1").Scan(&word)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrWordPoolEmpty
		}
		return "", fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return word, nil
}

func (s *PostgresStore) RandomWordExcept(ctx context.Context, prev string) (string, error) {
	var word string
	err := s.pool.QueryRow(ctx,
		"SELECT text FROM words WHERE text <> $1 ORDER BY RANDOM() LIMIT 1", prev).Scan(&word)
	if err == nil {
		return word, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	// Pool may contain only the previous word; re-issue it in that case.
	return s.RandomWord(ctx)
}

/* ----------------------------- snapshots ------------------------------ */

func (s *PostgresStore) DeleteSnapshots(ctx context.Context, date time.Time, period domain.SnapshotPeriod) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM score_snapshots WHERE snapshot_date = $1 AND period = $2",
		date, string(period))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) SaveSnapshots(ctx context.Context, snapshots []domain.ScoreSnapshot) error {
	for _, snap := range snapshots {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO score_snapshots (user_id, username, team, score, snapshot_date, period, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			snap.UserID, snap.Username, snap.Team, snap.Score,
			snap.SnapshotDate, string(snap.Period), snap.CreatedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
		}
	}
	return nil
}

func (s *PostgresStore) LatestSnapshotDate(ctx context.Context, period domain.SnapshotPeriod) (time.Time, bool, error) {
	var date time.Time
	err := s.pool.QueryRow(ctx,
		"SELECT snapshot_date FROM score_snapshots WHERE period = $1 ORDER BY snapshot_date DESC LIMIT 1",
		string(period)).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return date, true, nil
}

func (s *PostgresStore) SnapshotsOn(ctx context.Context, period domain.SnapshotPeriod, date time.Time) ([]domain.ScoreSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, username, team, score, snapshot_date, period, created_at
		 FROM score_snapshots WHERE period = $1 AND snapshot_date = $2`,
		string(period), date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

func (s *PostgresStore) SnapshotsBetween(ctx context.Context, period domain.SnapshotPeriod, start, end time.Time) ([]domain.ScoreSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, username, team, score, snapshot_date, period, created_at
		 FROM score_snapshots
		 WHERE period = $1 AND snapshot_date BETWEEN $2 AND $3
		 ORDER BY snapshot_date`,
		string(period), start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]domain.ScoreSnapshot, error) {
	snaps := make([]domain.ScoreSnapshot, 0)
	for rows.Next() {
		var snap domain.ScoreSnapshot
		var period string
		err := rows.Scan(&snap.ID, &snap.UserID, &snap.Username, &snap.Team,
			&snap.Score, &snap.SnapshotDate, &period, &snap.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
		}
		snap.Period = domain.SnapshotPeriod(period)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return snaps, nil
}
