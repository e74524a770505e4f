package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/redis"
	redismock "github.com/muhammadchandra19/book-builder/pkg/redis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *redis.Config {
	c := redis.DefaultConfig()
	c.PrefixKey = "bb:"
	c.DefaultTTL = time.Minute
	return c
}

func TestStore_Publish(t *testing.T) {
	snapshot := &orderbookv1.Snapshot{
		SequenceNumber: 3,
		Symbol:         "AAP",
		Depth:          1,
		Bids:           []orderbookv1.Level{{Price: 200, Volume: 100}},
		Asks:           []orderbookv1.Level{},
	}
	value, err := snapshotpublisherv1.ToBytes(snapshotpublisherv1.CreateFromSnapshot(snapshot))
	require.NoError(t, err)

	setErr := errors.NewErrorDetails("Failed to set value in Redis", errors.RedisSetError, "set")

	testCases := []struct {
		name     string
		mockFn   func(mock *redismock.MockClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *redismock.MockClient) {
				gomock.InOrder(
					mock.EXPECT().Set(gomock.Any(), "bb:book:AAP", value, time.Minute).Return(nil),
					mock.EXPECT().Publish(gomock.Any(), "bb:book.AAP", value).Return(int64(0), nil),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "retry after reconnect",
			mockFn: func(mock *redismock.MockClient) {
				gomock.InOrder(
					mock.EXPECT().Set(gomock.Any(), "bb:book:AAP", value, time.Minute).Return(setErr),
					mock.EXPECT().Reconnect(gomock.Any()).Return(true),
					mock.EXPECT().Set(gomock.Any(), "bb:book:AAP", value, time.Minute).Return(nil),
					mock.EXPECT().Publish(gomock.Any(), "bb:book.AAP", value).Return(int64(2), nil),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "reconnect fails",
			mockFn: func(mock *redismock.MockClient) {
				gomock.InOrder(
					mock.EXPECT().Set(gomock.Any(), "bb:book:AAP", value, time.Minute).Return(setErr),
					mock.EXPECT().Reconnect(gomock.Any()).Return(false),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, errors.RedisSetError))
			},
		},
		{
			name: "publish fails",
			mockFn: func(mock *redismock.MockClient) {
				gomock.InOrder(
					mock.EXPECT().Set(gomock.Any(), "bb:book:AAP", value, time.Minute).Return(nil),
					mock.EXPECT().Publish(gomock.Any(), "bb:book.AAP", value).
						Return(int64(0), errors.NewErrorDetails("Failed to publish", errors.RedisPublishError, "publish")),
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, errors.RedisPublishError))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redismock.NewMockClient(ctrl)
			tc.mockFn(client)

			store := NewStore(client, testConfig(), logger.NewNopLogger())
			tc.assertFn(t, store.Publish(context.Background(), snapshot))
		})
	}
}

func TestStore_GetLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := redismock.NewMockClient(ctrl)
	store := NewStore(client, testConfig(), logger.NewNopLogger())

	client.EXPECT().Get(gomock.Any(), "bb:book:NVD").Return("", nil)
	payload, err := store.GetLatest(context.Background(), "NVD")
	require.NoError(t, err)
	assert.Nil(t, payload)

	client.EXPECT().Get(gomock.Any(), "bb:book:NVD").
		Return(`{"sequenceNumber":9,"symbol":"NVD","depth":2,"bids":[{"volume":5,"price":10}],"asks":[]}`, nil)
	payload, err = store.GetLatest(context.Background(), "NVD")
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, uint32(9), payload.SequenceNumber)
	assert.Equal(t, []orderbookv1.Level{{Volume: 5, Price: 10}}, payload.Bids)

	client.EXPECT().Get(gomock.Any(), "bb:book:NVD").Return("{", nil)
	_, err = store.GetLatest(context.Background(), "NVD")
	assert.Error(t, err)

	client.EXPECT().Disconnect(gomock.Any()).Return(nil)
	assert.NoError(t, store.Close())
}
