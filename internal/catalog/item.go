// Package catalog holds the auction lots, accepts bids against them and
// answers the storefront's list and search queries.
package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/jredh-dev/velox/internal/money"
)

// Status is the lifecycle state of a lot.
type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusPreview Status = "preview"
)

// Category groups lots in the storefront tabs.
type Category string

const (
	CategoryRealEstate Category = "Imóveis"
	CategoryVehicles   Category = "Veículos"
	CategoryArt        Category = "Arte"
	CategoryJudicial   Category = "Judicial"
	CategoryOther      Category = "Outros"

	// AllCategories is the filter sentinel for "no category constraint".
	AllCategories Category = "Todos"
)

// Categories is the ordered list of storefront tabs.
var Categories = []Category{AllCategories, CategoryRealEstate, CategoryVehicles, CategoryJudicial, CategoryArt}

// AnonymousBidder is recorded when a bid arrives without a bidder name.
const AnonymousBidder = "Anônimo"

// Bid is an accepted bid. It never changes after acceptance.
type Bid struct {
	ID         string       `json:"id"`
	Amount     money.Amount `json:"amount"`
	BidderName string       `json:"bidder_name"`
	Timestamp  time.Time    `json:"timestamp"`
}

// Item is one auction lot. Only Bids and CurrentBid change after creation,
// and only through Store.PlaceBid.
type Item struct {
	ID          string       `json:"id"`
	LotNumber   int          `json:"lot_number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Location    string       `json:"location"`
	Category    Category     `json:"category"`
	CurrentBid  money.Amount `json:"current_bid"`
	StartingBid money.Amount `json:"starting_bid"`
	Increment   money.Amount `json:"increment"`
	EndsAt      time.Time    `json:"ends_at"`
	Bids        []Bid        `json:"bids"`
	Status      Status       `json:"status"`
}

// Floor is the minimum amount the next bid must reach. It saturates at the
// largest representable amount instead of wrapping.
func (it Item) Floor() money.Amount {
	if it.Increment > 0 && it.CurrentBid > math.MaxInt64-it.Increment {
		return math.MaxInt64
	}
	return it.CurrentBid + it.Increment
}

// Biddable reports whether the lot accepts bids at now.
func (it Item) Biddable(now time.Time) bool {
	return it.Status == StatusOpen && now.Before(it.EndsAt)
}

// LastBids returns up to n bids, newest first.
func (it Item) LastBids(n int) []Bid {
	if n > len(it.Bids) {
		n = len(it.Bids)
	}
	out := make([]Bid, 0, n)
	for i := len(it.Bids) - 1; i >= len(it.Bids)-n; i-- {
		out = append(out, it.Bids[i])
	}
	return out
}

// LotLabel renders the lot number the way the storefront badges it: "LOTE 045".
func (it Item) LotLabel() string {
	return fmt.Sprintf("LOTE %03d", it.LotNumber)
}

func (it Item) clone() Item {
	out := it
	out.Bids = make([]Bid, len(it.Bids))
	copy(out.Bids, it.Bids)
	return out
}

// validate checks the creation invariants and derives CurrentBid from the
// bid history.
func (it *Item) validate() error {
	if it.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidItem)
	}
	if it.Increment <= 0 {
		return fmt.Errorf("%w %s: increment must be positive", ErrInvalidItem, it.ID)
	}
	if it.StartingBid < 0 {
		return fmt.Errorf("%w %s: negative starting bid", ErrInvalidItem, it.ID)
	}
	if it.StartingBid > money.Max || it.Increment > money.Max {
		return fmt.Errorf("%w %s: amounts above %s", ErrInvalidItem, it.ID, money.Max)
	}
	switch it.Status {
	case StatusOpen, StatusClosed, StatusPreview:
	case "":
		it.Status = StatusOpen
	default:
		return fmt.Errorf("%w %s: unknown status %q", ErrInvalidItem, it.ID, it.Status)
	}

	current := it.StartingBid
	var last time.Time
	for i, b := range it.Bids {
		if b.Amount <= 0 {
			return fmt.Errorf("%w %s: bid %d amount must be positive", ErrInvalidItem, it.ID, i)
		}
		if b.Amount > money.Max {
			return fmt.Errorf("%w %s: bid %d above %s", ErrInvalidItem, it.ID, i, money.Max)
		}
		if b.Amount < current+it.Increment {
			return fmt.Errorf("%w %s: bid %d below previous plus increment", ErrInvalidItem, it.ID, i)
		}
		if i > 0 && b.Timestamp.Before(last) {
			return fmt.Errorf("%w %s: bid %d out of chronological order", ErrInvalidItem, it.ID, i)
		}
		current, last = b.Amount, b.Timestamp
	}
	it.CurrentBid = current
	return nil
}
