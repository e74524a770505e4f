package snapshotpublisherv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// Publisher delivers emitted snapshots to an external sink.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotpublisherv1_mock
type Publisher interface {
	// Publish hands one snapshot to the sink. Implementations must not retain it.
	Publish(ctx context.Context, snapshot *orderbookv1.Snapshot) error
	Close() error
}
