package catalog

import (
	"errors"
	"fmt"

	"github.com/jredh-dev/velox/internal/money"
)

var (
	ErrNotFound      = errors.New("auction item not found")
	ErrAuctionClosed = errors.New("auction is not open for bids")
	ErrBidTooLow     = errors.New("bid below minimum")
	ErrBidTooHigh    = errors.New("bid above maximum amount")
	ErrInvalidItem   = errors.New("invalid auction item")
)

// BidTooLowError reports a rejected proposal together with the floor in force
// when it was evaluated, so the caller can offer an immediate retry.
type BidTooLowError struct {
	Proposed money.Amount
	Current  money.Amount
	Floor    money.Amount
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid %s below minimum %s (current bid %s)", e.Proposed, e.Floor, e.Current)
}

// Is lets errors.Is(err, ErrBidTooLow) match.
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}
