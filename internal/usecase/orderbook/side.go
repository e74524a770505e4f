package orderbook

import (
	"cmp"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// bookSide is one half of a book: price levels ordered best-first plus the
// order-id index of that side.
type bookSide struct {
	side   messagev1.Side
	levels *rbt.Tree[int32, *PriceLevel]
	index  map[uint64]handle
}

// bidComparator sorts the highest price first.
func bidComparator(a, b int32) int {
	return cmp.Compare(b, a)
}

// askComparator sorts the lowest price first.
func askComparator(a, b int32) int {
	return cmp.Compare(a, b)
}

func newBookSide(side messagev1.Side) *bookSide {
	comparator := askComparator
	if side == messagev1.SideBuy {
		comparator = bidComparator
	}

	return &bookSide{
		side:   side,
		levels: rbt.NewWith[int32, *PriceLevel](comparator),
		index:  make(map[uint64]handle),
	}
}

// levelAt returns the level at price, creating and inserting it when absent.
func (s *bookSide) levelAt(price int32, a *arena) *PriceLevel {
	if level, found := s.levels.Get(price); found {
		return level
	}
	level := newPriceLevel(price, a)
	s.levels.Put(price, level)
	return level
}

// dropIfEmpty detaches level from the side once its quantity reaches zero.
func (s *bookSide) dropIfEmpty(level *PriceLevel) {
	if level.IsEmpty() {
		s.levels.Remove(level.price)
	}
}

// top returns up to depth visible levels, best first.
func (s *bookSide) top(depth uint32) []orderbookv1.Level {
	levels := make([]orderbookv1.Level, 0, min(int(depth), s.levels.Size()))
	it := s.levels.Iterator()
	for it.Next() && uint32(len(levels)) < depth {
		level := it.Value()
		levels = append(levels, orderbookv1.Level{Volume: level.quantity, Price: level.price})
	}
	return levels
}

// all returns every level, best first.
func (s *bookSide) all() []orderbookv1.LevelInfo {
	levels := make([]orderbookv1.LevelInfo, 0, s.levels.Size())
	it := s.levels.Iterator()
	for it.Next() {
		levels = append(levels, it.Value().info())
	}
	return levels
}
