package orderbook

import orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"

// handle addresses an order slot in the arena. Slots are reused after release.
type handle int32

const nilHandle handle = -1

// slot owns one resting order and its links inside the owning price level.
type slot struct {
	order orderbookv1.Order
	level *PriceLevel
	prev  handle
	next  handle
	live  bool
}

// arena stores every resting order of a book. Indexes and price levels hold
// handles, never pointers into the slice.
type arena struct {
	slots []slot
	free  []handle
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc(order orderbookv1.Order) handle {
	s := slot{order: order, prev: nilHandle, next: nilHandle, live: true}
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = s
		return h
	}
	a.slots = append(a.slots, s)
	return handle(len(a.slots) - 1)
}

func (a *arena) release(h handle) {
	a.slots[h] = slot{prev: nilHandle, next: nilHandle}
	a.free = append(a.free, h)
}

func (a *arena) get(h handle) *slot {
	if h < 0 || int(h) >= len(a.slots) || !a.slots[h].live {
		return nil
	}
	return &a.slots[h]
}

func (a *arena) len() int {
	return len(a.slots) - len(a.free)
}
