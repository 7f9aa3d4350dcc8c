package dedupe

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_Seen(t *testing.T) {
	c := New(time.Minute, 10)
	defer c.Close()

	assert.False(t, c.Seen("evt-1"), "first sighting is not a duplicate")
	assert.True(t, c.Seen("evt-1"), "second sighting is a duplicate")
	assert.False(t, c.Seen("evt-2"))
}

func TestCache_Expiry(t *testing.T) {
	c := New(10*time.Millisecond, 10)
	defer c.Close()

	assert.False(t, c.Seen("evt-1"))
	time.Sleep(20 * time.Millisecond)
	assert.False(t, c.Seen("evt-1"), "expired key counts as new")
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	c := New(time.Minute, 3)
	defer c.Close()

	for i := 0; i < 3; i++ {
		assert.False(t, c.Seen(fmt.Sprintf("evt-%d", i)))
	}

	// Inserting a fourth key pushes out evt-0.
	assert.False(t, c.Seen("evt-3"))
	assert.False(t, c.Seen("evt-0"))
	assert.True(t, c.Seen("evt-3"))
}

func TestCache_ConcurrentSeen(t *testing.T) {
	c := New(time.Minute, 1000)
	defer c.Close()

	// Exactly one of N concurrent callers wins for each key.
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := make(map[string]int)

	for _i := 0; _i < 8; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				key := fmt.Sprintf("evt-%d", i)
				if !c.Seen(key) {
					mu.Lock()
					wins[key]++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	for key, n := range wins {
		assert.Equal(t, 1, n, "key %s processed more than once", key)
	}
	assert.Len(t, wins, 50)
}

func TestCache_CloseTwice(t *testing.T) {
	c := New(time.Minute, 10)
	c.Close()
	c.Close()
}
