package snapshotpublisherv1

import (
	"encoding/json"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// SnapshotPayload is the wire form of a snapshot handed to external sinks.
type SnapshotPayload struct {
	SequenceNumber uint32              `json:"sequenceNumber"`
	Symbol         string              `json:"symbol"`
	Depth          uint32              `json:"depth"`
	Bids           []orderbookv1.Level `json:"bids"`
	Asks           []orderbookv1.Level `json:"asks"`
}

// CreateFromSnapshot copies a snapshot into its payload form.
func CreateFromSnapshot(snapshot *orderbookv1.Snapshot) *SnapshotPayload {
	clone := snapshot.Clone()
	return &SnapshotPayload{
		SequenceNumber: clone.SequenceNumber,
		Symbol:         clone.Symbol,
		Depth:          clone.Depth,
		Bids:           clone.Bids,
		Asks:           clone.Asks,
	}
}

// ToBytes converts the payload to JSON.
func ToBytes(payload *SnapshotPayload) ([]byte, error) {
	return json.Marshal(payload)
}

// FromBytes parses a JSON payload.
func FromBytes(data []byte) (*SnapshotPayload, error) {
	var payload SnapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
