package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/jredh-dev/velox/internal/money"
)

// Session is one shopper's view of a Store: the selected item and the active
// filter. It never caches item state, so reads after a bid see the bid.
type Session struct {
	store *Store

	mu       sync.Mutex
	selected string
	category Category
	query    string
}

// NewSession starts a session with no selection and no filter.
func NewSession(store *Store) *Session {
	return &Session{store: store, category: AllCategories}
}

// Store returns the backing store.
func (s *Session) Store() *Store {
	return s.store
}

// Select makes id the selected item.
func (s *Session) Select(id string) error {
	if _, err := s.store.Get(id); err != nil {
		return err
	}
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	return nil
}

// Clear drops the selection.
func (s *Session) Clear() {
	s.mu.Lock()
	s.selected = ""
	s.mu.Unlock()
}

// Selected returns the current state of the selected item.
func (s *Session) Selected() (Item, bool) {
	s.mu.Lock()
	id := s.selected
	s.mu.Unlock()
	if id == "" {
		return Item{}, false
	}
	it, err := s.store.Get(id)
	if err != nil {
		return Item{}, false
	}
	return it, true
}

// PlaceBid routes a bid to the selected item.
func (s *Session) PlaceBid(amount money.Amount, bidderName string, now time.Time) (*BidResult, error) {
	s.mu.Lock()
	id := s.selected
	s.mu.Unlock()
	if id == "" {
		return nil, fmt.Errorf("%w: no item selected", ErrNotFound)
	}
	return s.store.PlaceBid(id, amount, bidderName, now)
}

// SetCategory changes the category filter.
func (s *Session) SetCategory(c Category) {
	s.mu.Lock()
	s.category = c
	s.mu.Unlock()
}

// Category returns the category filter.
func (s *Session) Category() Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// SetQuery changes the search text.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// Query returns the search text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// ResetFilters returns to all categories and an empty search.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	s.category = AllCategories
	s.query = ""
	s.mu.Unlock()
}

// Items lists the items matching the session's filter.
func (s *Session) Items() []Item {
	s.mu.Lock()
	c, q := s.category, s.query
	s.mu.Unlock()
	return s.store.Query(c, q)
}
