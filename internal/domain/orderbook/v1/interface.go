package orderbookv1

import messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"

// LevelInfo describes a full price level, visible or not.
type LevelInfo struct {
	Price    int32
	Quantity uint64
	Count    int
}

// Orderbook defines the per-symbol book the dispatcher drives.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Orderbook interface {
	Symbol() string
	AddOrder(order Order, seq uint32) error
	ExecuteOrder(orderID uint64, side messagev1.Side, tradedQuantity uint64, seq uint32) error
	DeleteOrder(orderID uint64, side messagev1.Side, seq uint32) error
	UpdateOrder(order Order, seq uint32) error
	GetSnapshot() *Snapshot
	Levels(side messagev1.Side) []LevelInfo
}
