package store

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"sketchroom/internal/domain"
)

// SeedWords is the built-in word pool used when no database is configured.
// Everything on it is concrete enough to draw.
var SeedWords = []string{
	// Animals
	"dragon", "penguin", "octopus", "giraffe", "hedgehog",
	"tiger", "falcon", "wolf", "dolphin", "scorpion",
	"spider", "beetle", "unicorn", "serpent", "panther",

	// Places
	"lighthouse", "windmill", "pyramid", "harbor", "stadium",
	"bridge", "tunnel", "temple", "fortress", "tower",

	// Objects
	"umbrella", "hourglass", "lantern", "compass", "anchor",
	"helmet", "shield", "hammer", "whistle", "mirror",
	"telescope", "backpack", "snowman", "campfire", "kite",

	// Food & drinks
	"pizza", "burger", "sushi", "pancake", "watermelon",
	"pretzel", "cupcake", "popcorn", "taco", "donut",

	// Nature
	"volcano", "tornado", "glacier", "rainbow", "waterfall",
	"meteor", "eclipse", "cactus", "island", "avalanche",

	// Vehicles
	"submarine", "helicopter", "tractor", "sailboat", "scooter",
	"rocket", "bulldozer", "ambulance", "canoe", "zeppelin",
}

// MemoryStore is an in-memory implementation of the directory, word source
// and snapshot store. It backs development runs and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	words     []string
	snapshots []domain.ScoreSnapshot
	nextID    int64
	rand      *rand.Rand
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*domain.User),
		nextID: 1,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededMemoryStore creates a store preloaded with the built-in word pool
// and the admin account
func NewSeededMemoryStore(adminName string) *MemoryStore {
	s := NewMemoryStore()
	s.AddUser(adminName, 0)
	s.SetWords(SeedWords)
	return s
}

// AddUser registers a user with a zero score and no role
func (s *MemoryStore) AddUser(name string, team int) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &domain.User{ID: s.nextID, Name: name, Team: team}
	s.nextID++
	s.users[name] = u
	return u
}

// SetWords replaces the word pool
func (s *MemoryStore) SetWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = append([]string(nil), words...)
}

/* ------------------------------- users ------------------------------- */

func (s *MemoryStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[name]
	if !ok {
		return nil, domain.ErrUnknownUser
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[name]
	return ok, nil
}

func (s *MemoryStore) FindByNamesIn(ctx context.Context, names []string) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(names))
	for _, name := range names {
		if u, ok := s.users[name]; ok {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (s *MemoryStore) UpdateRole(ctx context.Context, name string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return domain.ErrUnknownUser
	}
	u.Role = role
	return nil
}

func (s *MemoryStore) DemoteDrawers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Role == domain.RoleDrawer {
			u.Role = domain.RoleParticipant
		}
	}
	return nil
}

func (s *MemoryStore) IncrementScore(ctx context.Context, name string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return domain.ErrUnknownUser
	}
	u.Score += delta
	return nil
}

func (s *MemoryStore) ResetAllScores(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		u.Score = 0
	}
	return nil
}

/* ------------------------------- words ------------------------------- */

func (s *MemoryStore) RandomWord(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.words) == 0 {
		return "", domain.ErrWordPoolEmpty
	}
	return s.words[s.rand.Intn(len(s.words))], nil
}

func (s *MemoryStore) RandomWordExcept(ctx context.Context, prev string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.words) == 0 {
		return "", domain.ErrWordPoolEmpty
	}
	if len(s.words) == 1 {
		return s.words[0], nil
	}
	for {
		next := s.words[s.rand.Intn(len(s.words))]
		if next != prev {
			return next, nil
		}
	}
}

/* ----------------------------- snapshots ------------------------------ */

func (s *MemoryStore) DeleteSnapshots(ctx context.Context, date time.Time, period domain.SnapshotPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.snapshots[:0]
	for _, snap := range s.snapshots {
		if !(sameDay(snap.SnapshotDate, date) && snap.Period == period) {
			kept = append(kept, snap)
		}
	}
	s.snapshots = kept
	return nil
}

func (s *MemoryStore) SaveSnapshots(ctx context.Context, snapshots []domain.ScoreSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range snapshots {
		snap.ID = s.nextID
		s.nextID++
		s.snapshots = append(s.snapshots, snap)
	}
	return nil
}

func (s *MemoryStore) LatestSnapshotDate(ctx context.Context, period domain.SnapshotPeriod) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest time.Time
	found := false
	for _, snap := range s.snapshots {
		if snap.Period == period && (!found || snap.SnapshotDate.After(latest)) {
			latest = snap.SnapshotDate
			found = true
		}
	}
	return latest, found, nil
}

func (s *MemoryStore) SnapshotsOn(ctx context.Context, period domain.SnapshotPeriod, date time.Time) ([]domain.ScoreSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snaps := make([]domain.ScoreSnapshot, 0)
	for _, snap := range s.snapshots {
		if snap.Period == period && sameDay(snap.SnapshotDate, date) {
			snaps = append(snaps, snap)
		}
	}
	return snaps, nil
}

func (s *MemoryStore) SnapshotsBetween(ctx context.Context, period domain.SnapshotPeriod, start, end time.Time) ([]domain.ScoreSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snaps := make([]domain.ScoreSnapshot, 0)
	for _, snap := range s.snapshots {
		if snap.Period != period {
			continue
		}
		d := snap.SnapshotDate
		if !d.Before(start) && !d.After(end) {
			snaps = append(snaps, snap)
		}
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].SnapshotDate.Before(snaps[j].SnapshotDate) })
	return snaps, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
