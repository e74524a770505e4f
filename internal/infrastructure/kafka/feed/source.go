package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	feedv1 "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1"
	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/decoder"
	pkgErrors "github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Config describes the topic carrying the framed feed, one record per message.
type Config struct {
	Brokers     []string      `env:"BROKERS" envDefault:"localhost:9092"`
	Topic       string        `env:"TOPIC" envDefault:"book-feed"`
	GroupID     string        `env:"GROUP_ID"`
	Partition   int           `env:"PARTITION" envDefault:"0"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"5s"`
}

// Validate checks that the source has a topic to read.
func (c Config) Validate() error {
	switch {
	case len(c.Brokers) == 0:
		return pkgErrors.NewErrorDetails("Kafka brokers are empty", pkgErrors.KafkaConfigError, "brokers")
	case c.Topic == "":
		return pkgErrors.NewErrorDetails("Kafka topic is empty", pkgErrors.KafkaConfigError, "topic")
	case c.IdleTimeout < 0:
		return pkgErrors.NewErrorDetails("Kafka idle timeout is negative", pkgErrors.KafkaConfigError, "idle_timeout")
	}
	return nil
}

// MessageReader is the subset of *kafka.Reader the source needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Source reads framed records from a Kafka topic.
type Source struct {
	reader      MessageReader
	decoder     *decoder.Decoder
	idleTimeout time.Duration
	logger      logger.Interface
}

var _ feedv1.Source = (*Source)(nil)

// NewSource creates a source reading the configured topic from the first offset.
func NewSource(config Config, opts *decoder.Options, log logger.Interface) *Source {
	readerConfig := kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	}
	if config.GroupID != "" {
		readerConfig.GroupID = config.GroupID
	} else {
		readerConfig.Partition = config.Partition
	}

	return NewSourceWithReader(kafka.NewReader(readerConfig), config.IdleTimeout, opts, log)
}

// NewSourceWithReader creates a source over an existing reader. A positive
// idleTimeout ends the feed when no message arrives in time.
func NewSourceWithReader(reader MessageReader, idleTimeout time.Duration, opts *decoder.Options, log logger.Interface) *Source {
	return &Source{
		reader:      reader,
		decoder:     decoder.NewDecoder(opts),
		idleTimeout: idleTimeout,
		logger:      log,
	}
}

// Next reads and decodes one Kafka message. The message value must hold
// exactly one framed record.
func (s *Source) Next(ctx context.Context) (messagev1.Message, error) {
	readCtx := ctx
	if s.idleTimeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, s.idleTimeout)
		defer cancel()
	}

	msg, err := s.reader.ReadMessage(readCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			s.logger.Info("kafka feed idle, ending stream", logger.Field{Key: "idle_timeout", Value: s.idleTimeout})
			return nil, io.EOF
		}
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, pkgErrors.NewTracer("kafka_feed_read_error").Wrap(err)
	}

	r := bytes.NewReader(msg.Value)
	frame, err := s.decoder.ReadFrame(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty kafka message at offset %d", messagev1.ErrMalformedMessage, msg.Offset)
		}
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after record seq %d at offset %d", messagev1.ErrMalformedMessage, r.Len(), frame.Header.SequenceNumber, msg.Offset)
	}

	return s.decoder.DecodeFrame(frame)
}

// Close closes the Kafka reader.
func (s *Source) Close() error {
	if err := s.reader.Close(); err != nil {
		return pkgErrors.NewTracer("kafka_feed_close_error").Wrap(err)
	}
	return nil
}
