package orderbook

import (
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// PriceLevel aggregates the resting orders at one price on one side, in
// arrival order.
type PriceLevel struct {
	price    int32
	quantity uint64
	count    int
	head     handle
	tail     handle
	arena    *arena
}

func newPriceLevel(price int32, a *arena) *PriceLevel {
	return &PriceLevel{
		price: price,
		head:  nilHandle,
		tail:  nilHandle,
		arena: a,
	}
}

// Price returns the level price.
func (l *PriceLevel) Price() int32 { return l.price }

// Quantity returns the sum of member order sizes.
func (l *PriceLevel) Quantity() uint64 { return l.quantity }

// Count returns the number of member orders.
func (l *PriceLevel) Count() int { return l.count }

// IsEmpty reports whether the level has no quantity left.
func (l *PriceLevel) IsEmpty() bool { return l.quantity == 0 }

// Add appends the order in slot h to the back of the level.
func (l *PriceLevel) Add(h handle) error {
	s := l.arena.get(h)
	if s == nil {
		return fmt.Errorf("%w: no resting order for handle %d", orderbookv1.ErrInvalidArgument, h)
	}
	if s.level != nil {
		return fmt.Errorf("%w: order %d already rests at price %d", orderbookv1.ErrInvalidArgument, s.order.OrderID, s.level.price)
	}
	if s.order.Price != l.price {
		return fmt.Errorf("%w: order %d price %d, level price %d", orderbookv1.ErrPriceMismatch, s.order.OrderID, s.order.Price, l.price)
	}

	s.level = l
	s.prev = l.tail
	s.next = nilHandle
	if l.tail != nilHandle {
		l.arena.slots[l.tail].next = h
	} else {
		l.head = h
	}
	l.tail = h

	l.count++
	l.quantity += s.order.Size
	return nil
}

// Remove unlinks the order in slot h and subtracts its current size. An order
// that is not a member of this level is ignored.
func (l *PriceLevel) Remove(h handle) {
	s := l.arena.get(h)
	if s == nil || s.level != l {
		return
	}

	if s.prev != nilHandle {
		l.arena.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != nilHandle {
		l.arena.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}
	s.prev, s.next, s.level = nilHandle, nilHandle, nil

	l.count--
	l.quantity -= s.order.Size
}

// ReduceQuantity lowers the aggregate quantity after a trade.
func (l *PriceLevel) ReduceQuantity(amount uint64) error {
	if amount > l.quantity {
		return fmt.Errorf("%w: reduce by %d, level %d holds %d", orderbookv1.ErrUnderflow, amount, l.price, l.quantity)
	}
	l.quantity -= amount
	return nil
}

// Orders returns copies of the member orders, first in first.
func (l *PriceLevel) Orders() []orderbookv1.Order {
	orders := make([]orderbookv1.Order, 0, l.count)
	for h := l.head; h != nilHandle; h = l.arena.slots[h].next {
		orders = append(orders, l.arena.slots[h].order)
	}
	return orders
}

func (l *PriceLevel) info() orderbookv1.LevelInfo {
	return orderbookv1.LevelInfo{Price: l.price, Quantity: l.quantity, Count: l.count}
}
