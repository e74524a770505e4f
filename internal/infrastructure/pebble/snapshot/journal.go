package snapshot

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	pkgErrors "github.com/muhammadchandra19/book-builder/pkg/errors"
)

// Journal keeps every emitted snapshot in a local Pebble store, keyed by
// symbol and sequence number so a symbol's history iterates in feed order.
//
// Key layout: <symbol>/<sequence number, 4 bytes big-endian>
type Journal struct {
	db   *pebble.DB
	sync bool
}

var _ snapshotpublisherv1.Publisher = (*Journal)(nil)

// Open opens (or creates) the journal in dir. With sync set every write is
// fsynced before Publish returns.
func Open(dir string, sync bool) (*Journal, error) {
	if dir == "" {
		return nil, pkgErrors.NewErrorDetails("journal directory is empty", pkgErrors.PebbleOpenError, "dir")
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, pkgErrors.NewTracer("pebble_open_error").Wrapf(err, "open %s", dir)
	}
	return &Journal{db: db, sync: sync}, nil
}

func keyFor(symbol string, seq uint32) []byte {
	key := make([]byte, 0, len(symbol)+1+4)
	key = append(key, symbol...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint32(key, seq)
}

// bounds returns the key range holding every entry of symbol. '0' is the
// byte after '/'.
func bounds(symbol string) (lower, upper []byte) {
	lower = append([]byte(symbol), '/')
	upper = append([]byte(symbol), '0')
	return lower, upper
}

func (j *Journal) writeOptions() *pebble.WriteOptions {
	if j.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

// Publish appends snapshot to the journal.
func (j *Journal) Publish(ctx context.Context, snapshot *orderbookv1.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("%w: nil snapshot", orderbookv1.ErrInvalidArgument)
	}

	value, err := json.Marshal(snapshot)
	if err != nil {
		return pkgErrors.NewTracer("pebble_marshal_error").Wrap(err)
	}
	if err := j.db.Set(keyFor(snapshot.Symbol, snapshot.SequenceNumber), value, j.writeOptions()); err != nil {
		return pkgErrors.NewTracer("pebble_set_error").Wrapf(err, "symbol %s seq %d", snapshot.Symbol, snapshot.SequenceNumber)
	}
	return nil
}

// Get returns the snapshot of symbol stamped with seq, nil when absent.
func (j *Journal) Get(symbol string, seq uint32) (*orderbookv1.Snapshot, error) {
	value, closer, err := j.db.Get(keyFor(symbol, seq))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.NewTracer("pebble_get_error").Wrap(err)
	}
	defer closer.Close()

	return decode(value)
}

// Latest returns the snapshot of symbol with the highest sequence number,
// nil when the symbol has none.
func (j *Journal) Latest(symbol string) (*orderbookv1.Snapshot, error) {
	lower, upper := bounds(symbol)
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, pkgErrors.NewTracer("pebble_iter_error").Wrap(err)
	}
	defer iter.Close()

	if !iter.Last() {
		return nil, iter.Error()
	}
	return decode(iter.Value())
}

// Scan calls fn for every snapshot of symbol in sequence order and stops at
// the first error fn returns.
func (j *Journal) Scan(symbol string, fn func(*orderbookv1.Snapshot) error) error {
	lower, upper := bounds(symbol)
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return pkgErrors.NewTracer("pebble_iter_error").Wrap(err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		snapshot, err := decode(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(snapshot); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close flushes and closes the store.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

func decode(value []byte) (*orderbookv1.Snapshot, error) {
	snapshot := &orderbookv1.Snapshot{}
	if err := json.Unmarshal(value, snapshot); err != nil {
		return nil, pkgErrors.NewTracer("pebble_decode_error").Wrap(err)
	}
	return snapshot, nil
}
