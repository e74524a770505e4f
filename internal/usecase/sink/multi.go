package sink

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"go.uber.org/multierr"
)

// Multi fans a snapshot out to several publishers in order.
type Multi struct {
	publishers []snapshotpublisherv1.Publisher
}

var _ snapshotpublisherv1.Publisher = (*Multi)(nil)

// NewMulti creates a fan-out over publishers. Nil publishers are skipped.
func NewMulti(publishers ...snapshotpublisherv1.Publisher) *Multi {
	m := &Multi{}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

// Len returns the number of publishers.
func (m *Multi) Len() int {
	return len(m.publishers)
}

// Publish hands snapshot to every publisher and stops at the first failure.
func (m *Multi) Publish(ctx context.Context, snapshot *orderbookv1.Snapshot) error {
	for _, p := range m.publishers {
		if err := p.Publish(ctx, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every publisher, collecting all failures.
func (m *Multi) Close() error {
	var err error
	for _, p := range m.publishers {
		err = multierr.Append(err, p.Close())
	}
	return err
}
