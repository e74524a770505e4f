package orderbook

import (
	"testing"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLevel(price int32) (*PriceLevel, *arena) {
	a := newArena()
	return newPriceLevel(price, a), a
}

func testOrder(id uint64, side messagev1.Side, price int32, size uint64) orderbookv1.Order {
	return orderbookv1.Order{OrderID: id, Symbol: "NVD", Side: side, Price: price, Size: size}
}

func TestPriceLevel_Add(t *testing.T) {
	level, a := newTestLevel(100)

	h1 := a.alloc(testOrder(1, messagev1.SideBuy, 100, 10))
	h2 := a.alloc(testOrder(2, messagev1.SideBuy, 100, 15))
	require.NoError(t, level.Add(h1))
	require.NoError(t, level.Add(h2))

	assert.Equal(t, uint64(25), level.Quantity())
	assert.Equal(t, 2, level.Count())

	orders := level.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, uint64(1), orders[0].OrderID)
	assert.Equal(t, uint64(2), orders[1].OrderID)
}

func TestPriceLevel_Add_PriceMismatch(t *testing.T) {
	level, a := newTestLevel(100)

	h := a.alloc(testOrder(1, messagev1.SideBuy, 101, 10))
	err := level.Add(h)

	assert.ErrorIs(t, err, orderbookv1.ErrPriceMismatch)
	assert.Equal(t, uint64(0), level.Quantity())
	assert.Equal(t, 0, level.Count())
}

func TestPriceLevel_Remove(t *testing.T) {
	testCases := []struct {
		name         string
		remove       []int
		wantQuantity uint64
		wantIDs      []uint64
	}{
		{name: "head", remove: []int{0}, wantQuantity: 50, wantIDs: []uint64{2, 3}},
		{name: "middle", remove: []int{1}, wantQuantity: 40, wantIDs: []uint64{1, 3}},
		{name: "tail", remove: []int{2}, wantQuantity: 30, wantIDs: []uint64{1, 2}},
		{name: "twice is a no-op", remove: []int{1, 1}, wantQuantity: 40, wantIDs: []uint64{1, 3}},
		{name: "all", remove: []int{0, 1, 2}, wantQuantity: 0, wantIDs: []uint64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, a := newTestLevel(100)
			handles := []handle{
				a.alloc(testOrder(1, messagev1.SideSell, 100, 10)),
				a.alloc(testOrder(2, messagev1.SideSell, 100, 20)),
				a.alloc(testOrder(3, messagev1.SideSell, 100, 30)),
			}
			for _, h := range handles {
				require.NoError(t, level.Add(h))
			}

			for _, i := range tc.remove {
				level.Remove(handles[i])
			}

			assert.Equal(t, tc.wantQuantity, level.Quantity())
			assert.Equal(t, len(tc.wantIDs), level.Count())
			ids := []uint64{}
			for _, o := range level.Orders() {
				ids = append(ids, o.OrderID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestPriceLevel_Remove_NotMember(t *testing.T) {
	level, a := newTestLevel(100)
	other := newPriceLevel(100, a)

	member := a.alloc(testOrder(1, messagev1.SideBuy, 100, 10))
	stranger := a.alloc(testOrder(2, messagev1.SideBuy, 100, 7))
	require.NoError(t, level.Add(member))
	require.NoError(t, other.Add(stranger))

	level.Remove(stranger)
	level.Remove(handle(99))

	assert.Equal(t, uint64(10), level.Quantity())
	assert.Equal(t, 1, level.Count())
	assert.Equal(t, uint64(7), other.Quantity())
}

func TestPriceLevel_ReduceQuantity(t *testing.T) {
	level, a := newTestLevel(100)
	require.NoError(t, level.Add(a.alloc(testOrder(1, messagev1.SideBuy, 100, 10))))

	require.NoError(t, level.ReduceQuantity(4))
	assert.Equal(t, uint64(6), level.Quantity())

	err := level.ReduceQuantity(7)
	assert.ErrorIs(t, err, orderbookv1.ErrUnderflow)
	assert.Equal(t, uint64(6), level.Quantity())

	require.NoError(t, level.ReduceQuantity(6))
	assert.True(t, level.IsEmpty())
}
