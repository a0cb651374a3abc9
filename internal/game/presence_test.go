package game

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceAddRemove(t *testing.T) {
	p := NewPresenceSet()

	assert.True(t, p.Add("alice"))
	assert.False(t, p.Add("alice"), "second add of same name is not new")
	assert.Equal(t, 1, p.Len())
	assert.True(t, p.Contains("alice"))

	assert.True(t, p.Remove("alice"))
	assert.False(t, p.Remove("alice"), "removing an absent name is a no-op")
	assert.Equal(t, 0, p.Len())
}

func TestPresenceNames(t *testing.T) {
	p := NewPresenceSet()
	p.Add("bob")
	p.Add("carol")

	names := p.Names()
	assert.Len(t, names, 2)
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)
}

func TestPresenceConcurrentChurn(t *testing.T) {
	p := NewPresenceSet()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user%d", i%10)
			p.Add(name)
			p.Contains(name)
			p.Remove(name)
			p.Add(name)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, p.Len())
	assert.Len(t, p.Names(), 10)
}
