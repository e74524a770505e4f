package orderbook

import (
	"fmt"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// Orderbook is the resting-order book of one symbol. It is not safe for
// concurrent use.
type Orderbook struct {
	symbol   string
	depth    uint32
	arena    *arena
	bids     *bookSide
	asks     *bookSide
	snapshot *orderbookv1.Snapshot
}

var _ orderbookv1.Orderbook = (*Orderbook)(nil)

// NewOrderbook creates an empty book exposing depth levels per side.
func NewOrderbook(symbol string, depth uint32) (*Orderbook, error) {
	if depth == 0 {
		return nil, fmt.Errorf("%w: depth must be positive", orderbookv1.ErrInvalidArgument)
	}

	return &Orderbook{
		symbol:   symbol,
		depth:    depth,
		arena:    newArena(),
		bids:     newBookSide(messagev1.SideBuy),
		asks:     newBookSide(messagev1.SideSell),
		snapshot: orderbookv1.NewSnapshot(symbol, depth),
	}, nil
}

// Symbol returns the instrument of the book.
func (ob *Orderbook) Symbol() string { return ob.symbol }

// Depth returns the number of visible levels per side.
func (ob *Orderbook) Depth() uint32 { return ob.depth }

// OrderCount returns the number of resting orders on both sides.
func (ob *Orderbook) OrderCount() int { return ob.arena.len() }

func (ob *Orderbook) sideOf(side messagev1.Side) (*bookSide, error) {
	switch side {
	case messagev1.SideBuy:
		return ob.bids, nil
	case messagev1.SideSell:
		return ob.asks, nil
	default:
		return nil, fmt.Errorf("%w: unknown side %q", orderbookv1.ErrInvalidArgument, byte(side))
	}
}

func (ob *Orderbook) validate(order orderbookv1.Order) (*bookSide, error) {
	bs, err := ob.sideOf(order.Side)
	if err != nil {
		return nil, err
	}
	if order.Size == 0 {
		return nil, fmt.Errorf("%w: order %d has zero size", orderbookv1.ErrInvalidArgument, order.OrderID)
	}
	if order.Symbol != "" && order.Symbol != ob.symbol {
		return nil, fmt.Errorf("%w: order %d is for %q, book is %q", orderbookv1.ErrInvalidArgument, order.OrderID, order.Symbol, ob.symbol)
	}
	return bs, nil
}

// AddOrder rests a new order at the back of its price level.
func (ob *Orderbook) AddOrder(order orderbookv1.Order, seq uint32) error {
	bs, err := ob.validate(order)
	if err != nil {
		return err
	}
	if _, exists := ob.bids.index[order.OrderID]; exists {
		return fmt.Errorf("%w: order %d rests on the bid side", orderbookv1.ErrDuplicateOrder, order.OrderID)
	}
	if _, exists := ob.asks.index[order.OrderID]; exists {
		return fmt.Errorf("%w: order %d rests on the ask side", orderbookv1.ErrDuplicateOrder, order.OrderID)
	}

	order.Symbol = ob.symbol
	level := bs.levelAt(order.Price, ob.arena)
	h := ob.arena.alloc(order)
	if err := level.Add(h); err != nil {
		ob.arena.release(h)
		bs.dropIfEmpty(level)
		return err
	}
	bs.index[order.OrderID] = h

	ob.updateSnapshot(seq, order.Side, order.Price)
	return nil
}

// ExecuteOrder reports a trade of tradedQuantity against a resting order.
// A fully traded order leaves the book; an emptied level leaves its side.
func (ob *Orderbook) ExecuteOrder(orderID uint64, side messagev1.Side, tradedQuantity uint64, seq uint32) error {
	bs, err := ob.sideOf(side)
	if err != nil {
		return err
	}
	h, exists := bs.index[orderID]
	if !exists {
		return fmt.Errorf("%w: execute %d on %s side", orderbookv1.ErrOrderNotFound, orderID, side)
	}

	s := ob.arena.get(h)
	if tradedQuantity > s.order.Size {
		return fmt.Errorf("%w: traded %d, order %d has %d", orderbookv1.ErrQuantityExceedsOrder, tradedQuantity, orderID, s.order.Size)
	}

	level, price := s.level, s.order.Price
	if err := level.ReduceQuantity(tradedQuantity); err != nil {
		return err
	}
	s.order.Size -= tradedQuantity

	if s.order.IsFilled() {
		level.Remove(h)
		delete(bs.index, orderID)
		ob.arena.release(h)
	}
	bs.dropIfEmpty(level)

	ob.updateSnapshot(seq, side, price)
	return nil
}

// DeleteOrder removes a resting order.
func (ob *Orderbook) DeleteOrder(orderID uint64, side messagev1.Side, seq uint32) error {
	bs, err := ob.sideOf(side)
	if err != nil {
		return err
	}
	h, exists := bs.index[orderID]
	if !exists {
		return fmt.Errorf("%w: delete %d on %s side", orderbookv1.ErrOrderNotFound, orderID, side)
	}

	s := ob.arena.get(h)
	level, price := s.level, s.order.Price
	level.Remove(h)
	delete(bs.index, orderID)
	ob.arena.release(h)
	bs.dropIfEmpty(level)

	ob.updateSnapshot(seq, side, price)
	return nil
}

// UpdateOrder replaces a resting order with order (same id and side), as a
// delete followed by an add. The order loses its place in the level queue.
// Both the old and the new price are checked against the visible window.
func (ob *Orderbook) UpdateOrder(order orderbookv1.Order, seq uint32) error {
	bs, err := ob.validate(order)
	if err != nil {
		return err
	}
	h, exists := bs.index[order.OrderID]
	if !exists {
		return fmt.Errorf("%w: update %d on %s side", orderbookv1.ErrOrderNotFound, order.OrderID, order.Side)
	}
	oldPrice := ob.arena.get(h).order.Price

	if err := ob.DeleteOrder(order.OrderID, order.Side, seq); err != nil {
		return err
	}
	if err := ob.AddOrder(order, seq); err != nil {
		return err
	}

	ob.updateSnapshot(seq, order.Side, oldPrice, order.Price)
	return nil
}

// updateSnapshot recomputes the visible window of side when any of prices
// could have changed it. IsUpdated is reassigned on every call.
func (ob *Orderbook) updateSnapshot(seq uint32, side messagev1.Side, prices ...int32) {
	ob.snapshot.IsUpdated = ob.snapshot.PriceInVisibleRange(prices, side)
	if !ob.snapshot.IsUpdated {
		return
	}

	bs, _ := ob.sideOf(side)
	ob.snapshot.UpdateBookEntries(bs.top(ob.depth), side)
	ob.snapshot.SequenceNumber = seq
}

// GetSnapshot returns a copy of the snapshot when the last applied event
// changed the visible window, nil otherwise. Repeated calls between events
// return equal results.
func (ob *Orderbook) GetSnapshot() *orderbookv1.Snapshot {
	if !ob.snapshot.IsUpdated {
		return nil
	}
	return ob.snapshot.Clone()
}

// Levels returns every price level of side, best first.
func (ob *Orderbook) Levels(side messagev1.Side) []orderbookv1.LevelInfo {
	bs, err := ob.sideOf(side)
	if err != nil {
		return nil
	}
	return bs.all()
}

// Order returns a copy of the resting order with orderID on side.
func (ob *Orderbook) Order(orderID uint64, side messagev1.Side) (orderbookv1.Order, bool) {
	bs, err := ob.sideOf(side)
	if err != nil {
		return orderbookv1.Order{}, false
	}
	h, exists := bs.index[orderID]
	if !exists {
		return orderbookv1.Order{}, false
	}
	return ob.arena.get(h).order, true
}

// LevelOrders returns the resting orders at price on side, first in first.
func (ob *Orderbook) LevelOrders(side messagev1.Side, price int32) []orderbookv1.Order {
	bs, err := ob.sideOf(side)
	if err != nil {
		return nil
	}
	level, found := bs.levels.Get(price)
	if !found {
		return nil
	}
	return level.Orders()
}
