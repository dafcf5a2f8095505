package catalog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jredh-dev/velox/internal/money"
)

// entry guards one item. Acceptance for an item is serialized on mu: the
// floor check and the append happen in the same critical section.
type entry struct {
	mu   sync.Mutex
	item Item
}

// Store holds the auction items of a session or server.
type Store struct {
	// byID and order are fixed after NewStore; only entries mutate.
	byID  map[string]*entry
	order []*entry

	newID func() string
}

// NewStore validates items and creates a store preserving their order.
func NewStore(items []Item) (*Store, error) {
	s := &Store{
		byID:  make(map[string]*entry, len(items)),
		order: make([]*entry, 0, len(items)),
		newID: uuid.NewString,
	}
	for _, it := range items {
		it = it.clone()
		if err := it.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidItem, it.ID)
		}
		e := &entry{item: it}
		s.byID[it.ID] = e
		s.order = append(s.order, e)
	}
	return s, nil
}

// BidResult describes an accepted bid.
type BidResult struct {
	Bid      Bid          `json:"bid"`
	Item     Item         `json:"item"`
	Previous money.Amount `json:"previous_bid"`
}

// PlaceBid evaluates a proposal against the item's state at call time and,
// when it clears the floor, appends it and moves the current bid. Any error
// leaves the item unchanged. Amounts above money.Max are refused with
// ErrBidTooHigh.
func (s *Store) PlaceBid(itemID string, amount money.Amount, bidderName string, now time.Time) (*BidResult, error) {
	e, ok := s.byID[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, itemID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	it := &e.item
	if !it.Biddable(now) {
		return nil, fmt.Errorf("%w: lot %d", ErrAuctionClosed, it.LotNumber)
	}
	if floor := it.Floor(); amount < floor {
		return nil, &BidTooLowError{Proposed: amount, Current: it.CurrentBid, Floor: floor}
	}
	if amount > money.Max {
		return nil, fmt.Errorf("%w: %s", ErrBidTooHigh, amount)
	}

	bidderName = strings.TrimSpace(bidderName)
	if bidderName == "" {
		bidderName = AnonymousBidder
	}
	bid := Bid{
		ID:         s.newID(),
		Amount:     amount,
		BidderName: bidderName,
		Timestamp:  now,
	}
	// Keep the history monotonic even if the caller's clock stepped back.
	if n := len(it.Bids); n > 0 && now.Before(it.Bids[n-1].Timestamp) {
		bid.Timestamp = it.Bids[n-1].Timestamp
	}

	previous := it.CurrentBid
	it.Bids = append(it.Bids, bid)
	it.CurrentBid = amount

	return &BidResult{Bid: bid, Item: it.clone(), Previous: previous}, nil
}

// Get returns a copy of the item.
func (s *Store) Get(id string) (Item, error) {
	e, ok := s.byID[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e.snapshot(), nil
}

// List returns copies of all items in seed order.
func (s *Store) List() []Item {
	out := make([]Item, 0, len(s.order))
	for _, e := range s.order {
		out = append(out, e.snapshot())
	}
	return out
}

// Query filters the current items.
func (s *Store) Query(category Category, query string) []Item {
	return Filter(s.List(), category, query)
}

// Stats summarizes the store at now.
type Stats struct {
	Items int `json:"items"`
	Open  int `json:"open"`
	Bids  int `json:"bids"`
}

// Stats returns aggregate counts.
func (s *Store) Stats(now time.Time) Stats {
	var st Stats
	for _, it := range s.List() {
		st.Items++
		st.Bids += len(it.Bids)
		if it.Biddable(now) {
			st.Open++
		}
	}
	return st
}

func (e *entry) snapshot() Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.item.clone()
}
