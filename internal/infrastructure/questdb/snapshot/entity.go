package snapshot

import (
	"encoding/json"
	"time"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// Row is one row of the book_snapshots table. Levels are stored as JSON arrays.
type Row struct {
	Timestamp      time.Time
	RunID          string
	Symbol         string
	SequenceNumber int64
	Depth          int32
	Bids           string
	Asks           string
}

// NewRow converts a snapshot into a table row.
func NewRow(snapshot *orderbookv1.Snapshot, runID string, ts time.Time) (*Row, error) {
	bids, err := encodeLevels(snapshot.Bids)
	if err != nil {
		return nil, err
	}
	asks, err := encodeLevels(snapshot.Asks)
	if err != nil {
		return nil, err
	}

	return &Row{
		Timestamp:      ts,
		RunID:          runID,
		Symbol:         snapshot.Symbol,
		SequenceNumber: int64(snapshot.SequenceNumber),
		Depth:          int32(snapshot.Depth),
		Bids:           bids,
		Asks:           asks,
	}, nil
}

// Snapshot converts the row back into a snapshot.
func (r *Row) Snapshot() (*orderbookv1.Snapshot, error) {
	snapshot := orderbookv1.NewSnapshot(r.Symbol, uint32(r.Depth))
	snapshot.SequenceNumber = uint32(r.SequenceNumber)
	if err := json.Unmarshal([]byte(r.Bids), &snapshot.Bids); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(r.Asks), &snapshot.Asks); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func encodeLevels(levels []orderbookv1.Level) (string, error) {
	if levels == nil {
		levels = []orderbookv1.Level{}
	}
	b, err := json.Marshal(levels)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
