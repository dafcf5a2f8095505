package countdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestBoardEmpty(t *testing.T) {
	b := NewBoard(SourceFunc(func() []Deadline { return nil }), time.Hour)
	defer b.Stop()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "1h 0m restam", b.Label("x", now.Add(time.Hour), now))
}

func TestBoardCachesCoarseLabels(t *testing.T) {
	clock := &fakeClock{t: now}
	ends := now.Add(3*time.Hour + 30*time.Minute)
	src := SourceFunc(func() []Deadline { return []Deadline{{ID: "a", EndsAt: ends}} })

	b := NewBoard(src, time.Hour, WithClock(clock.Now))
	defer b.Stop()
	assert.Equal(t, 1, b.Len())

	// Between refreshes the label stays at the last computed value.
	assert.Equal(t, "3h 30m restam", b.Label("a", ends, now.Add(20*time.Minute)))

	clock.Advance(20 * time.Minute)
	b.rebuild()
	assert.Equal(t, "3h 10m restam", b.Label("a", ends, clock.Now()))
}

func TestBoardFlipsToEndedImmediately(t *testing.T) {
	ends := now.Add(90 * time.Second)
	src := SourceFunc(func() []Deadline { return []Deadline{{ID: "a", EndsAt: ends}} })

	b := NewBoard(src, time.Hour, WithClock(func() time.Time { return now }))
	defer b.Stop()

	assert.Equal(t, "0h 1m restam", b.Label("a", ends, ends.Add(-time.Second)))
	assert.Equal(t, Ended, b.Label("a", ends, ends))
	assert.Equal(t, Ended, b.Label("a", ends, ends.Add(time.Minute)))
}

func TestBoardMovedDeadline(t *testing.T) {
	ends := now.Add(2 * time.Hour)
	src := SourceFunc(func() []Deadline { return []Deadline{{ID: "a", EndsAt: ends}} })

	b := NewBoard(src, time.Hour, WithClock(func() time.Time { return now }))
	defer b.Stop()

	assert.Equal(t, "5h 0m restam", b.Label("a", now.Add(5*time.Hour), now))
}

func TestBoardWorkerRefreshes(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	src := SourceFunc(func() []Deadline {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})

	b := NewBoard(src, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 3
	}, time.Second, time.Millisecond)
	b.Stop()
	b.Stop()
}
