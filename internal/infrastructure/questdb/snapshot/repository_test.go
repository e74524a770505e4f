package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	mock "github.com/muhammadchandra19/book-builder/pkg/questdb/mock"
	"github.com/muhammadchandra19/book-builder/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRow scans a prepared Row, or fails with err.
type fixedRow struct {
	row *Row
	err error
}

func (f fixedRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	*(dest[0].(*time.Time)) = f.row.Timestamp
	*(dest[1].(*string)) = f.row.RunID
	*(dest[2].(*string)) = f.row.Symbol
	*(dest[3].(*int64)) = f.row.SequenceNumber
	*(dest[4].(*int32)) = f.row.Depth
	*(dest[5].(*string)) = f.row.Bids
	*(dest[6].(*string)) = f.row.Asks
	return nil
}

func TestRepository_Store(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	snapshot := &orderbookv1.Snapshot{
		SequenceNumber: 100,
		Symbol:         "NVD",
		Depth:          2,
		Bids:           []orderbookv1.Level{{Price: 110, Volume: 200}, {Price: 105, Volume: 100}},
	}

	testCases := []struct {
		name     string
		mockFn   func(mock *mock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *mock.MockQuestDBClient) {
				mock.EXPECT().Exec(gomock.Any(), insertQuery,
					ts, "run-1", "NVD", int64(100), int32(2),
					`[{"volume":200,"price":110},{"volume":100,"price":105}]`, `[]`,
				).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(mock *mock.MockQuestDBClient) {
				mock.EXPECT().Exec(gomock.Any(), insertQuery, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(client)

			repo := NewRepository(client)
			repo.now = func() time.Time { return ts }

			ctx := util.WithRunID(context.Background(), "run-1")
			tc.assertFn(t, repo.Publish(ctx, snapshot))
		})
	}
}

func TestRepository_GetLatestBySymbol(t *testing.T) {
	stored := &Row{
		Timestamp:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		RunID:          "run-1",
		Symbol:         "AAP",
		SequenceNumber: 7,
		Depth:          1,
		Bids:           `[{"volume":5,"price":-1}]`,
		Asks:           `[]`,
	}

	testCases := []struct {
		name     string
		row      pgx.Row
		assertFn func(t *testing.T, row *Row, err error)
	}{
		{
			name: "found",
			row:  fixedRow{row: stored},
			assertFn: func(t *testing.T, row *Row, err error) {
				require.NoError(t, err)
				assert.Equal(t, stored, row)

				snapshot, err := row.Snapshot()
				require.NoError(t, err)
				assert.Equal(t, uint32(7), snapshot.SequenceNumber)
				assert.Equal(t, []orderbookv1.Level{{Price: -1, Volume: 5}}, snapshot.Bids)
				assert.Empty(t, snapshot.Asks)
			},
		},
		{
			name: "not found",
			row:  fixedRow{err: pgx.ErrNoRows},
			assertFn: func(t *testing.T, row *Row, err error) {
				assert.NoError(t, err)
				assert.Nil(t, row)
			},
		},
		{
			name: "error",
			row:  fixedRow{err: errors.New("connection reset")},
			assertFn: func(t *testing.T, row *Row, err error) {
				assert.ErrorContains(t, err, "connection reset")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			client.EXPECT().QueryRow(gomock.Any(), latestQuery, "AAP").Return(tc.row)

			row, err := NewRepository(client).GetLatestBySymbol(context.Background(), "AAP")
			tc.assertFn(t, row, err)
		})
	}
}

func TestRepository_GetByRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockQuestDBClient(ctrl)
	rows := mock.NewMockRowsInterface(ctrl)

	client.EXPECT().Query(gomock.Any(), bySeqQuery, "run-1", "AAP").Return(rows, nil)
	gomock.InOrder(
		rows.EXPECT().Next().Return(true),
		rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		rows.EXPECT().Next().Return(true),
		rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		rows.EXPECT().Next().Return(false),
		rows.EXPECT().Err().Return(nil),
	)
	rows.EXPECT().Close()

	result, err := NewRepository(client).GetByRun(context.Background(), "run-1", "AAP")
	require.NoError(t, err)
	assert.Len(t, result, 2)

	client.EXPECT().Close()
	assert.NoError(t, NewRepository(client).Close())
}
