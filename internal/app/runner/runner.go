package runner

import (
	"context"
	"time"

	"github.com/muhammadchandra19/book-builder/internal/app/engine"
	feedv1 "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/sink"
	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/util"
)

// Summary describes a finished run.
type Summary struct {
	Events    uint64
	Snapshots uint64
	Books     int
	Symbols   []string
	Elapsed   time.Duration
}

// Runner replays one feed through an engine and hands every emitted
// snapshot to the console and then to the optional publisher.
type Runner struct {
	engine    *engine.Engine
	console   *sink.Console
	publisher snapshotpublisherv1.Publisher
	logger    logger.Interface
	now       func() time.Time
}

// NewRunner creates a runner. publisher may be nil.
func NewRunner(e *engine.Engine, console *sink.Console, publisher snapshotpublisherv1.Publisher, log logger.Interface) *Runner {
	return &Runner{
		engine:    e,
		console:   console,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Run consumes source until it ends, fails, or ctx is cancelled. Lines
// already written are flushed in every case.
func (r *Runner) Run(ctx context.Context, source feedv1.Source) (summary Summary, err error) {
	started := r.now()
	r.logger.InfoContext(ctx, "run started",
		logger.Field{Key: "source", Value: util.GetSource(ctx)},
		logger.Field{Key: "depth", Value: r.engine.Registry().Depth()},
	)

	stream := r.engine.Process(ctx, source)
	defer func() {
		if flushErr := r.console.Flush(); flushErr != nil && err == nil {
			err = errors.NewTracer("runner_output_error").Wrap(flushErr)
		}

		registry := r.engine.Registry()
		summary = Summary{
			Events:    stream.Events(),
			Snapshots: stream.Snapshots(),
			Books:     registry.Len(),
			Symbols:   registry.Symbols(),
			Elapsed:   r.now().Sub(started),
		}
		r.logger.InfoContext(ctx, "run finished",
			logger.Field{Key: "events", Value: summary.Events},
			logger.Field{Key: "snapshots", Value: summary.Snapshots},
			logger.Field{Key: "books", Value: summary.Books},
			logger.Field{Key: "elapsed", Value: summary.Elapsed.String()},
		)
	}()

	for stream.Next() {
		res := stream.Result()
		if res.Snapshot == nil {
			continue
		}

		if err := r.console.Publish(ctx, res.Snapshot); err != nil {
			return summary, errors.NewTracer("runner_output_error").Wrap(err)
		}
		if r.publisher == nil {
			continue
		}
		if err := r.publisher.Publish(ctx, res.Snapshot); err != nil {
			r.logger.ErrorContext(ctx, err,
				logger.Field{Key: "action", Value: "publish_snapshot"},
				logger.Field{Key: "symbol", Value: res.Symbol},
				logger.Field{Key: "sequence_number", Value: res.SequenceNumber},
			)
			return summary, errors.NewTracer("runner_publish_error").Wrapf(err, "seq %d symbol %s", res.SequenceNumber, res.Symbol)
		}
	}

	if err := stream.Err(); err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "process_feed"})
		return summary, err
	}
	return summary, nil
}
