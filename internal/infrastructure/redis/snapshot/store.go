package snapshot

import (
	"context"
	"time"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/redis"
)

// Store keeps the latest snapshot of every symbol under <prefix>book:<symbol>
// and announces each one on channel <prefix>book.<symbol>.
type Store struct {
	client redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Interface
}

var _ snapshotpublisherv1.Publisher = (*Store)(nil)

// NewStore creates a Redis snapshot store. The client must be connected.
func NewStore(client redis.Client, config *redis.Config, log logger.Interface) *Store {
	return &Store{
		client: client,
		prefix: config.PrefixKey,
		ttl:    config.DefaultTTL,
		logger: log,
	}
}

// Key returns the key holding the latest snapshot of symbol.
func (s *Store) Key(symbol string) string {
	return s.prefix + "book:" + symbol
}

// Channel returns the channel snapshots of symbol are published on.
func (s *Store) Channel(symbol string) string {
	return s.prefix + "book." + symbol
}

// Publish stores the snapshot and publishes it to subscribers. A failed
// write is retried once after a successful reconnect.
func (s *Store) Publish(ctx context.Context, snapshot *orderbookv1.Snapshot) error {
	value, err := snapshotpublisherv1.ToBytes(snapshotpublisherv1.CreateFromSnapshot(snapshot))
	if err != nil {
		return errors.NewTracer("redis_snapshot_encode_error").Wrap(err)
	}

	key := s.Key(snapshot.Symbol)
	if err := s.client.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "redis snapshot write failed, reconnecting",
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "error", Value: err.Error()},
		)
		if !s.client.Reconnect(ctx) {
			return errors.NewTracer("redis_snapshot_set_error").Wrap(err)
		}
		if err := s.client.Set(ctx, key, value, s.ttl); err != nil {
			return errors.NewTracer("redis_snapshot_set_error").Wrap(err)
		}
	}

	if _, err := s.client.Publish(ctx, s.Channel(snapshot.Symbol), value); err != nil {
		return errors.NewTracer("redis_snapshot_publish_error").Wrap(err)
	}
	return nil
}

// GetLatest returns the stored snapshot of symbol, nil when there is none.
func (s *Store) GetLatest(ctx context.Context, symbol string) (*snapshotpublisherv1.SnapshotPayload, error) {
	value, err := s.client.Get(ctx, s.Key(symbol))
	if err != nil {
		return nil, errors.NewTracer("redis_snapshot_get_error").Wrap(err)
	}
	if value == "" {
		return nil, nil
	}

	payload, err := snapshotpublisherv1.FromBytes([]byte(value))
	if err != nil {
		return nil, errors.NewTracer("redis_snapshot_decode_error").Wrap(err)
	}
	return payload, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
