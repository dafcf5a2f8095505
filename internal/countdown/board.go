package countdown

import (
	"sync"
	"time"
)

// DefaultInterval is the coarse refresh cadence.
const DefaultInterval = time.Minute

// Deadline is one lot's closing time.
type Deadline struct {
	ID     string
	EndsAt time.Time
}

// Source lists the deadlines a Board tracks.
type Source interface {
	Deadlines() []Deadline
}

// SourceFunc adapts a function to Source.
type SourceFunc func() []Deadline

func (f SourceFunc) Deadlines() []Deadline { return f() }

type label struct {
	endsAt time.Time
	text   string
}

// Board keeps coarse labels for a set of deadlines, recomputed by a
// background worker on a fixed cadence.
type Board struct {
	src      Source
	interval time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	labels map[string]label
	stop   chan struct{}
	once   sync.Once
}

// Option configures a Board.
type Option func(*Board)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// NewBoard builds the labels once and starts the worker. A non-positive
// interval means DefaultInterval.
func NewBoard(src Source, interval time.Duration, opts ...Option) *Board {
	if interval <= 0 {
		interval = DefaultInterval
	}
	b := &Board{
		src:      src,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, o := range opts {
		o(b)
	}
	b.rebuild()
	go b.run()
	return b
}

// Label returns the coarse label for id. Once now reaches endsAt the answer
// is Ended regardless of what the worker last computed; unknown ids or a
// moved deadline are computed directly.
func (b *Board) Label(id string, endsAt, now time.Time) string {
	if !now.Before(endsAt) {
		return Ended
	}
	b.mu.RLock()
	l, ok := b.labels[id]
	b.mu.RUnlock()
	if ok && l.endsAt.Equal(endsAt) {
		return l.text
	}
	return Label(now, endsAt, Coarse)
}

// Len reports how many deadlines are tracked.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.labels)
}

// Stop shuts down the background worker. It is safe to call more than once.
func (b *Board) Stop() {
	b.once.Do(func() { close(b.stop) })
}

func (b *Board) run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.rebuild()
		case <-b.stop:
			return
		}
	}
}

func (b *Board) rebuild() {
	now := b.now()
	all := b.src.Deadlines()

	labels := make(map[string]label, len(all))
	for _, d := range all {
		labels[d.ID] = label{endsAt: d.EndsAt, text: Label(now, d.EndsAt, Coarse)}
	}

	b.mu.Lock()
	b.labels = labels
	b.mu.Unlock()
}
