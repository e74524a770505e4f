package formatter

import (
	"testing"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
)

func TestFormatSnapshot(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot *orderbookv1.Snapshot
		want     string
	}{
		{
			name: "both sides",
			snapshot: &orderbookv1.Snapshot{
				SequenceNumber: 1,
				Symbol:         "ABC",
				Bids:           []orderbookv1.Level{{Price: 250, Volume: 100}, {Price: 200, Volume: 150}},
				Asks:           []orderbookv1.Level{{Price: 350, Volume: 200}, {Price: 300, Volume: 250}},
			},
			want: "1, ABC, [(250, 100), (200, 150)], [(350, 200), (300, 250)]",
		},
		{
			name:     "empty sides",
			snapshot: &orderbookv1.Snapshot{SequenceNumber: 1, Symbol: "ABC"},
			want:     "1, ABC, [], []",
		},
		{
			name: "negative price and one-sided",
			snapshot: &orderbookv1.Snapshot{
				SequenceNumber: 4294967295,
				Symbol:         "NV",
				Asks:           []orderbookv1.Level{{Price: -5, Volume: 18446744073709551615}},
			},
			want: "4294967295, NV, [], [(-5, 18446744073709551615)]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatSnapshot(tc.snapshot))
		})
	}
}
