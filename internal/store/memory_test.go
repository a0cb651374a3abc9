package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchroom/internal/domain"
)

func TestFindByNameReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.AddUser("alice", 1)

	u, err := s.FindByName(context.Background(), "alice")
	require.NoError(t, err)
	u.Score = 99

	again, err := s.FindByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, again.Score, "callers must not mutate stored users")
}

func TestFindByNameUnknown(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.FindByName(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	s := NewMemoryStore()

	err := s.UpdateRole(context.Background(), "ghost", domain.RoleDrawer)

	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestDemoteDrawersOnlyTouchesDrawers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.AddUser("admin", 0)
	s.AddUser("alice", 1)
	s.AddUser("bob", 2)
	s.UpdateRole(ctx, "admin", domain.RoleAdmin)
	s.UpdateRole(ctx, "alice", domain.RoleDrawer)
	s.UpdateRole(ctx, "bob", domain.RoleParticipant)

	require.NoError(t, s.DemoteDrawers(ctx))

	users, err := s.FindAll(ctx)
	require.NoError(t, err)
	roles := make(map[string]domain.Role)
	for _, u := range users {
		roles[u.Name] = u.Role
	}
	assert.Equal(t, domain.RoleAdmin, roles["admin"])
	assert.Equal(t, domain.RoleParticipant, roles["alice"])
	assert.Equal(t, domain.RoleParticipant, roles["bob"])
}

func TestFindByNamesInSkipsUnknown(t *testing.T) {
	s := NewMemoryStore()
	s.AddUser("alice", 1)
	s.AddUser("bob", 2)

	users, err := s.FindByNamesIn(context.Background(), []string{"bob", "ghost", "alice"})

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
	assert.Equal(t, "bob", users[1].Name)
}

func TestRandomWordEmptyPool(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.RandomWord(context.Background())

	assert.ErrorIs(t, err, domain.ErrWordPoolEmpty)
}

func TestRandomWordExceptSingleWordPool(t *testing.T) {
	s := NewMemoryStore()
	s.SetWords([]string{"apple"})

	word, err := s.RandomWordExcept(context.Background(), "apple")

	require.NoError(t, err)
	assert.Equal(t, "apple", word, "a one-word pool reissues the same word")
}

func TestRandomWordExceptAvoidsPrevious(t *testing.T) {
	s := NewMemoryStore()
	s.SetWords([]string{"apple", "pear"})

	for i := 0; i < 20; i++ {
		word, err := s.RandomWordExcept(context.Background(), "apple")
		require.NoError(t, err)
		assert.Equal(t, "pear", word)
	}
}

func TestDeleteSnapshotsMatchesDateAndPeriod(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	day1 := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSnapshots(ctx, []domain.ScoreSnapshot{
		{UserID: 1, Username: "alice", Score: 3, SnapshotDate: day1, Period: domain.SnapshotDaily},
		{UserID: 1, Username: "alice", Score: 5, SnapshotDate: day2, Period: domain.SnapshotDaily},
		{UserID: 1, Username: "alice", Score: 5, SnapshotDate: day2, Period: domain.SnapshotWeekly},
	}))

	require.NoError(t, s.DeleteSnapshots(ctx, day2, domain.SnapshotDaily))

	daily1, err := s.SnapshotsOn(ctx, domain.SnapshotDaily, day1)
	require.NoError(t, err)
	assert.Len(t, daily1, 1)

	daily2, err := s.SnapshotsOn(ctx, domain.SnapshotDaily, day2)
	require.NoError(t, err)
	assert.Empty(t, daily2)

	weekly, err := s.SnapshotsOn(ctx, domain.SnapshotWeekly, day2)
	require.NoError(t, err)
	assert.Len(t, weekly, 1)
}

func TestLatestSnapshotDate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, found, err := s.LatestSnapshotDate(ctx, domain.SnapshotDaily)
	require.NoError(t, err)
	assert.False(t, found)

	day1 := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSnapshots(ctx, []domain.ScoreSnapshot{
		{UserID: 1, SnapshotDate: day2, Period: domain.SnapshotDaily},
		{UserID: 1, SnapshotDate: day1, Period: domain.SnapshotDaily},
	}))

	latest, found, err := s.LatestSnapshotDate(ctx, domain.SnapshotDaily)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, day2, latest)
}

func TestSnapshotsBetweenSortedByDate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	day1 := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSnapshots(ctx, []domain.ScoreSnapshot{
		{UserID: 1, SnapshotDate: day2, Period: domain.SnapshotDaily},
		{UserID: 1, SnapshotDate: day1, Period: domain.SnapshotDaily},
		{UserID: 1, SnapshotDate: day1, Period: domain.SnapshotWeekly},
	}))

	snaps, err := s.SnapshotsBetween(ctx, domain.SnapshotDaily,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, day1, snaps[0].SnapshotDate)
	assert.Equal(t, day2, snaps[1].SnapshotDate)
}
