package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	feedmock "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1/mock"
	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	pkgErrors "github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource replays a fixed list of messages, then io.EOF.
type sliceSource struct {
	msgs []messagev1.Message
	pos  int
}

func (s *sliceSource) Next(context.Context) (messagev1.Message, error) {
	if s.pos >= len(s.msgs) {
		return nil, io.EOF
	}
	msg := s.msgs[s.pos]
	s.pos++
	return msg, nil
}

func (s *sliceSource) Close() error { return nil }

func added(seq uint32, symbol string, id uint64, side messagev1.Side, size uint64, price int32) *messagev1.Added {
	return &messagev1.Added{
		Common: messagev1.Common{SequenceNumber: seq, Symbol: symbol, OrderID: id, Side: side},
		Size:   size,
		Price:  price,
	}
}

func newTestEngine(t *testing.T, depth uint32) *Engine {
	t.Helper()
	e, err := NewEngine(&Options{Depth: depth}, logger.NewNopLogger())
	require.NoError(t, err)
	return e
}

func collect(t *testing.T, stream *Stream) []Result {
	t.Helper()
	results := []Result{}
	for stream.Next() {
		results = append(results, stream.Result())
	}
	return results
}

func TestNewEngine_ZeroDepth(t *testing.T) {
	_, err := NewEngine(&Options{Depth: 0}, logger.NewNopLogger())
	assert.ErrorIs(t, err, orderbookv1.ErrInvalidArgument)
}

func TestEngine_Process(t *testing.T) {
	e := newTestEngine(t, 2)
	source := &sliceSource{msgs: []messagev1.Message{
		added(1, "NVD", 1, messagev1.SideBuy, 200, 110),
		added(2, "AAP", 2, messagev1.SideSell, 50, 300),
		added(3, "NVD", 3, messagev1.SideBuy, 150, 100),
		added(4, "NVD", 4, messagev1.SideBuy, 100, 90),
		&messagev1.Executed{Common: messagev1.Common{SequenceNumber: 5, Symbol: "NVD", OrderID: 1, Side: messagev1.SideBuy}, TradedQuantity: 200},
		&messagev1.Deleted{Common: messagev1.Common{SequenceNumber: 6, Symbol: "AAP", OrderID: 2, Side: messagev1.SideSell}},
	}}

	stream := e.Process(context.Background(), source)
	results := collect(t, stream)
	require.NoError(t, stream.Err())
	require.Len(t, results, 6)

	assert.Equal(t, uint32(1), results[0].SequenceNumber)
	assert.Equal(t, "NVD", results[0].Symbol)
	require.NotNil(t, results[0].Snapshot)
	assert.Equal(t, []orderbookv1.Level{{Price: 110, Volume: 200}}, results[0].Snapshot.Bids)

	require.NotNil(t, results[1].Snapshot)
	assert.Equal(t, "AAP", results[1].Snapshot.Symbol)
	assert.Equal(t, []orderbookv1.Level{{Price: 300, Volume: 50}}, results[1].Snapshot.Asks)

	// third bid falls below the depth-2 window
	assert.Nil(t, results[3].Snapshot)

	require.NotNil(t, results[4].Snapshot)
	assert.Equal(t, uint32(5), results[4].Snapshot.SequenceNumber)
	assert.Equal(t, []orderbookv1.Level{{Price: 100, Volume: 150}, {Price: 90, Volume: 100}}, results[4].Snapshot.Bids)

	require.NotNil(t, results[5].Snapshot)
	assert.Empty(t, results[5].Snapshot.Asks)

	assert.Equal(t, uint64(6), stream.Events())
	assert.Equal(t, uint64(5), stream.Snapshots())
	assert.Equal(t, []string{"NVD", "AAP"}, e.Registry().Symbols())
	assert.False(t, stream.Next())
}

func TestEngine_Process_StopsAtFirstError(t *testing.T) {
	e := newTestEngine(t, 1)
	source := &sliceSource{msgs: []messagev1.Message{
		added(1, "NVD", 1, messagev1.SideBuy, 10, 100),
		&messagev1.Executed{Common: messagev1.Common{SequenceNumber: 2, Symbol: "NVD", OrderID: 1, Side: messagev1.SideBuy}, TradedQuantity: 11},
		added(3, "NVD", 2, messagev1.SideBuy, 10, 100),
	}}

	stream := e.Process(context.Background(), source)
	results := collect(t, stream)

	require.Len(t, results, 1)
	err := stream.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, orderbookv1.ErrQuantityExceedsOrder)

	var tracer *pkgErrors.ErrorTracer
	require.ErrorAs(t, err, &tracer)
	assert.Equal(t, "engine_process_error", tracer.Message)
	assert.Equal(t, 2, source.pos)
	assert.False(t, stream.Next())
}

func TestEngine_Process_Source(t *testing.T) {
	feedErr := errors.New("feed broken")

	testCases := []struct {
		name     string
		mockFn   func(mock *feedmock.MockSource)
		assertFn func(t *testing.T, results []Result, err error)
	}{
		{
			name: "empty feed",
			mockFn: func(mock *feedmock.MockSource) {
				mock.EXPECT().Next(gomock.Any()).Return(nil, io.EOF)
			},
			assertFn: func(t *testing.T, results []Result, err error) {
				assert.NoError(t, err)
				assert.Empty(t, results)
			},
		},
		{
			name: "malformed record",
			mockFn: func(mock *feedmock.MockSource) {
				gomock.InOrder(
					mock.EXPECT().Next(gomock.Any()).Return(added(1, "AAP", 1, messagev1.SideSell, 5, 10), nil),
					mock.EXPECT().Next(gomock.Any()).Return(nil, messagev1.ErrMalformedMessage),
				)
			},
			assertFn: func(t *testing.T, results []Result, err error) {
				assert.Len(t, results, 1)
				assert.ErrorIs(t, err, messagev1.ErrMalformedMessage)
			},
		},
		{
			name: "source failure",
			mockFn: func(mock *feedmock.MockSource) {
				mock.EXPECT().Next(gomock.Any()).Return(nil, feedErr)
			},
			assertFn: func(t *testing.T, results []Result, err error) {
				assert.Empty(t, results)
				assert.ErrorIs(t, err, feedErr)
			},
		},
		{
			name: "nil message",
			mockFn: func(mock *feedmock.MockSource) {
				mock.EXPECT().Next(gomock.Any()).Return(nil, nil)
			},
			assertFn: func(t *testing.T, results []Result, err error) {
				assert.ErrorIs(t, err, orderbookv1.ErrInvalidArgument)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := feedmock.NewMockSource(ctrl)
			tc.mockFn(source)

			stream := newTestEngine(t, 3).Process(context.Background(), source)
			results := collect(t, stream)
			tc.assertFn(t, results, stream.Err())
		})
	}
}

func TestEngine_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &sliceSource{msgs: []messagev1.Message{
		added(1, "NVD", 1, messagev1.SideBuy, 10, 100),
		added(2, "NVD", 2, messagev1.SideBuy, 10, 101),
	}}

	stream := newTestEngine(t, 1).Process(ctx, source)
	require.True(t, stream.Next())

	cancel()
	assert.False(t, stream.Next())
	assert.Equal(t, context.Canceled, stream.Err())
	assert.Equal(t, 1, source.pos)
}

func TestRegistry(t *testing.T) {
	_, err := NewRegistry(0, logger.NewNopLogger())
	assert.ErrorIs(t, err, orderbookv1.ErrInvalidArgument)

	r, err := NewRegistry(4, logger.NewNopLogger())
	require.NoError(t, err)

	_, ok := r.Lookup("AAP")
	assert.False(t, ok)

	first, err := r.Book("AAP")
	require.NoError(t, err)
	second, err := r.Book("NVD")
	require.NoError(t, err)
	again, err := r.Book("AAP")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, second)
	assert.Equal(t, uint32(4), first.Depth())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"AAP", "NVD"}, r.Symbols())
}
