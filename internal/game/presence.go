package game

import (
	"sync"
	"sync/atomic"
)

// PresenceSet is the set of currently-connected user names. It is mutated
// from many connection goroutines at once and needs no external lock.
type PresenceSet struct {
	members sync.Map
	size    atomic.Int32
}

// NewPresenceSet creates an empty presence set
func NewPresenceSet() *PresenceSet {
	return &PresenceSet{}
}

// Add inserts a name and reports whether it was newly added
func (p *PresenceSet) Add(name string) bool {
	if _, loaded := p.members.LoadOrStore(name, struct{}{}); loaded {
		return false
	}
	p.size.Add(1)
	return true
}

// Remove deletes a name and reports whether it was present
func (p *PresenceSet) Remove(name string) bool {
	if _, loaded := p.members.LoadAndDelete(name); !loaded {
		return false
	}
	p.size.Add(-1)
	return true
}

// Contains reports whether the name is online
func (p *PresenceSet) Contains(name string) bool {
	_, ok := p.members.Load(name)
	return ok
}

// Len returns the number of online users
func (p *PresenceSet) Len() int {
	return int(p.size.Load())
}

// Names returns a snapshot of the online names
func (p *PresenceSet) Names() []string {
	names := make([]string, 0, p.Len())
	p.members.Range(func(key, _ interface{}) bool {
		names = append(names, key.(string))
		return true
	})
	return names
}
