package sink

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublishermock "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestMulti_Publish(t *testing.T) {
	snapshot := &orderbookv1.Snapshot{SequenceNumber: 3, Symbol: "AAP"}
	failure := errors.New("publish failed")

	testCases := []struct {
		name     string
		mockFn   func(first, second *snapshotpublishermock.MockPublisher)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "publishes in order",
			mockFn: func(first, second *snapshotpublishermock.MockPublisher) {
				gomock.InOrder(
					first.EXPECT().Publish(gomock.Any(), snapshot).Return(nil),
					second.EXPECT().Publish(gomock.Any(), snapshot).Return(nil),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "stops at first failure",
			mockFn: func(first, second *snapshotpublishermock.MockPublisher) {
				first.EXPECT().Publish(gomock.Any(), snapshot).Return(failure)
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, failure)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			first := snapshotpublishermock.NewMockPublisher(ctrl)
			second := snapshotpublishermock.NewMockPublisher(ctrl)
			tc.mockFn(first, second)

			m := NewMulti(first, nil, second)
			assert.Equal(t, 2, m.Len())
			tc.assertFn(t, m.Publish(context.Background(), snapshot))
		})
	}
}

func TestMulti_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errA, errB := errors.New("a"), errors.New("b")
	first := snapshotpublishermock.NewMockPublisher(ctrl)
	second := snapshotpublishermock.NewMockPublisher(ctrl)
	third := snapshotpublishermock.NewMockPublisher(ctrl)
	first.EXPECT().Close().Return(errA)
	second.EXPECT().Close().Return(nil)
	third.EXPECT().Close().Return(errB)

	err := NewMulti(first, second, third).Close()
	require.Error(t, err)
	assert.Equal(t, []error{errA, errB}, multierr.Errors(err))
}

func TestConsole_Publish(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	require.NoError(t, c.Publish(context.Background(), &orderbookv1.Snapshot{
		SequenceNumber: 100,
		Symbol:         "NVD",
		Bids:           []orderbookv1.Level{{Price: 110, Volume: 200}, {Price: 105, Volume: 100}},
		Asks:           []orderbookv1.Level{{Price: 120, Volume: 200}, {Price: 130, Volume: 150}},
	}))
	require.NoError(t, c.Publish(context.Background(), &orderbookv1.Snapshot{SequenceNumber: 101, Symbol: "AAP"}))
	assert.Empty(t, buf.String())

	require.NoError(t, c.Close())
	assert.Equal(t, "100, NVD, [(110, 200), (105, 100)], [(120, 200), (130, 150)]\n101, AAP, [], []\n", buf.String())
}
