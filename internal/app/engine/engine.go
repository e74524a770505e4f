package engine

import (
	"context"
	"errors"
	"io"

	feedv1 "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/dispatcher"
	pkgErrors "github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
)

// Engine replays a feed into per-symbol books.
type Engine struct {
	registry *Registry
	logger   logger.Interface
}

// Result is the outcome of one event.
type Result struct {
	SequenceNumber uint32
	Symbol         string
	// Snapshot is nil when the event left the visible window unchanged.
	Snapshot *orderbookv1.Snapshot
}

// NewEngine creates an engine with an empty registry.
func NewEngine(options *Options, log logger.Interface) (*Engine, error) {
	if options == nil {
		options = DefaultEngineOptions()
	}

	registry, err := NewRegistry(options.Depth, log)
	if err != nil {
		return nil, pkgErrors.NewTracer("engine_init_error").Wrap(err)
	}

	return &Engine{
		registry: registry,
		logger:   log,
	}, nil
}

// Registry returns the books built so far.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Process returns a single-pass stream over source. Nothing is read until
// the first call to Next.
func (e *Engine) Process(ctx context.Context, source feedv1.Source) *Stream {
	return &Stream{
		ctx:    ctx,
		engine: e,
		source: source,
	}
}

// Stream pulls one event at a time from a source and applies it.
//
//	for stream.Next() {
//		res := stream.Result()
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	ctx    context.Context
	engine *Engine
	source feedv1.Source

	result    Result
	err       error
	done      bool
	events    uint64
	snapshots uint64
}

// Next applies the next event and reports whether a result is available.
// It returns false at the end of the feed or on the first error.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		return s.fail(err)
	}

	msg, err := s.source.Next(s.ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.done = true
			return false
		}
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			return s.fail(ctxErr)
		}
		return s.fail(pkgErrors.NewTracer("engine_feed_error").Wrap(err))
	}
	if msg == nil {
		return s.fail(pkgErrors.NewTracer("engine_process_error").Wrap(orderbookv1.ErrInvalidArgument))
	}

	envelope := msg.Envelope()
	book, err := s.engine.registry.Book(envelope.Symbol)
	if err != nil {
		return s.fail(pkgErrors.NewTracer("engine_process_error").Wrap(err))
	}

	snapshot, err := dispatcher.Dispatch(msg, book)
	if err != nil {
		return s.fail(pkgErrors.NewTracer("engine_process_error").Wrapf(err, "seq %d symbol %s", envelope.SequenceNumber, envelope.Symbol))
	}

	s.events++
	if snapshot != nil {
		s.snapshots++
	}
	s.result = Result{
		SequenceNumber: envelope.SequenceNumber,
		Symbol:         envelope.Symbol,
		Snapshot:       snapshot,
	}
	return true
}

func (s *Stream) fail(err error) bool {
	s.err = err
	s.done = true
	s.result = Result{}
	return false
}

// Result returns the outcome of the event applied by the last successful Next.
func (s *Stream) Result() Result {
	return s.result
}

// Err returns the error that stopped the stream, nil after a clean end of feed.
func (s *Stream) Err() error {
	return s.err
}

// Events returns the number of events applied.
func (s *Stream) Events() uint64 {
	return s.events
}

// Snapshots returns the number of events that produced a snapshot.
func (s *Stream) Snapshots() uint64 {
	return s.snapshots
}
