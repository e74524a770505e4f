package orderbookv1

import (
	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
)

// Level is one visible price level: aggregate volume at a price.
type Level struct {
	Volume uint64 `json:"volume"`
	Price  int32  `json:"price"`
}

// Snapshot is the top-Depth view of both sides of a book, stamped with the
// sequence number of the event that last changed it.
type Snapshot struct {
	SequenceNumber uint32  `json:"sequenceNumber"`
	Symbol         string  `json:"symbol"`
	Depth          uint32  `json:"depth"`
	Bids           []Level `json:"bids"`
	Asks           []Level `json:"asks"`
	IsUpdated      bool    `json:"isUpdated"`
}

// NewSnapshot returns an empty snapshot for a book.
func NewSnapshot(symbol string, depth uint32) *Snapshot {
	return &Snapshot{
		Symbol: symbol,
		Depth:  depth,
		Bids:   []Level{},
		Asks:   []Level{},
	}
}

// Clone returns a deep copy; mutating the copy never reaches the original.
func (s *Snapshot) Clone() *Snapshot {
	clone := *s
	clone.Bids = append(make([]Level, 0, len(s.Bids)), s.Bids...)
	clone.Asks = append(make([]Level, 0, len(s.Asks)), s.Asks...)
	return &clone
}

// LowestVisibleBid is the price of the worst visible bid, 0 when none is visible.
func (s *Snapshot) LowestVisibleBid() int32 {
	if len(s.Bids) == 0 {
		return 0
	}
	return s.Bids[len(s.Bids)-1].Price
}

// HighestVisibleAsk is the price of the worst visible ask, 0 when none is visible.
func (s *Snapshot) HighestVisibleAsk() int32 {
	if len(s.Asks) == 0 {
		return 0
	}
	return s.Asks[len(s.Asks)-1].Price
}

// PriceInVisibleRange reports whether a change at any of prices could alter
// the visible window of side.
func (s *Snapshot) PriceInVisibleRange(prices []int32, side messagev1.Side) bool {
	switch side {
	case messagev1.SideBuy:
		if uint32(len(s.Bids)) < s.Depth {
			return true
		}
		lowest := s.LowestVisibleBid()
		for _, p := range prices {
			if p >= lowest {
				return true
			}
		}
	case messagev1.SideSell:
		if uint32(len(s.Asks)) < s.Depth {
			return true
		}
		highest := s.HighestVisibleAsk()
		for _, p := range prices {
			if p <= highest {
				return true
			}
		}
	}
	return false
}

// UpdateBookEntries replaces the visible levels of one side.
func (s *Snapshot) UpdateBookEntries(levels []Level, side messagev1.Side) {
	switch side {
	case messagev1.SideBuy:
		s.Bids = levels
	case messagev1.SideSell:
		s.Asks = levels
	}
}
