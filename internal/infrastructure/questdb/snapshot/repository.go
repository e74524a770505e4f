package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"github.com/muhammadchandra19/book-builder/pkg/questdb"
	"github.com/muhammadchandra19/book-builder/pkg/util"
)

const (
	insertQuery = `INSERT INTO book_snapshots (timestamp, run_id, symbol, sequence_number, depth, bids, asks) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	latestQuery = `SELECT timestamp, run_id, symbol, sequence_number, depth, bids, asks FROM book_snapshots WHERE symbol = $1 ORDER BY timestamp DESC LIMIT 1`
	bySeqQuery  = `SELECT timestamp, run_id, symbol, sequence_number, depth, bids, asks FROM book_snapshots WHERE run_id = $1 AND symbol = $2 ORDER BY sequence_number`
)

// Repository keeps the history of emitted snapshots in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
	now    func() time.Time
}

var _ snapshotpublisherv1.Publisher = (*Repository)(nil)

// NewRepository creates a new snapshot repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
		now:    time.Now,
	}
}

// Store inserts one snapshot, tagged with the run id carried by ctx.
func (r *Repository) Store(ctx context.Context, snapshot *orderbookv1.Snapshot) error {
	row, err := NewRow(snapshot, util.GetRunID(ctx), r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	err = r.client.Exec(ctx, insertQuery,
		row.Timestamp, row.RunID, row.Symbol, row.SequenceNumber, row.Depth, row.Bids, row.Asks)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// GetLatestBySymbol returns the most recent snapshot of symbol, nil when none is stored.
func (r *Repository) GetLatestBySymbol(ctx context.Context, symbol string) (*Row, error) {
	row := &Row{}
	err := r.client.QueryRow(ctx, latestQuery, symbol).Scan(
		&row.Timestamp, &row.RunID, &row.Symbol, &row.SequenceNumber, &row.Depth, &row.Bids, &row.Asks)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return row, nil
}

// GetByRun returns the snapshots of symbol emitted during one run, in sequence order.
func (r *Repository) GetByRun(ctx context.Context, runID, symbol string) ([]*Row, error) {
	rows, err := r.client.Query(ctx, bySeqQuery, runID, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		row := &Row{}
		if err := rows.Scan(&row.Timestamp, &row.RunID, &row.Symbol, &row.SequenceNumber, &row.Depth, &row.Bids, &row.Asks); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return result, nil
}

// Publish implements snapshotpublisherv1.Publisher.
func (r *Repository) Publish(ctx context.Context, snapshot *orderbookv1.Snapshot) error {
	return r.Store(ctx, snapshot)
}

// Close closes the QuestDB client.
func (r *Repository) Close() error {
	r.client.Close()
	return nil
}
