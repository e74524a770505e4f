package snapshot

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Config describes the topic snapshots are written to.
type Config struct {
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"book-snapshots"`
}

// Validate checks that the publisher has somewhere to write.
func (c Config) Validate() error {
	switch {
	case len(c.Brokers) == 0:
		return errors.NewErrorDetails("Kafka brokers are empty", errors.KafkaConfigError, "brokers")
	case c.Topic == "":
		return errors.NewErrorDetails("Kafka topic is empty", errors.KafkaConfigError, "topic")
	}
	return nil
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes snapshots as JSON, keyed by symbol so a symbol's
// snapshots stay in order on one partition.
type Publisher struct {
	kafkaWriter MessageWriter
	logger      logger.Interface
}

var _ snapshotpublisherv1.Publisher = (*Publisher)(nil)

// NewPublisher creates a Kafka snapshot publisher.
func NewPublisher(config Config, logger logger.Interface) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}, logger)
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(writer MessageWriter, logger logger.Interface) *Publisher {
	return &Publisher{
		kafkaWriter: writer,
		logger:      logger,
	}
}

// Publish writes one snapshot.
func (p *Publisher) Publish(ctx context.Context, snapshot *orderbookv1.Snapshot) error {
	value, err := snapshotpublisherv1.ToBytes(snapshotpublisherv1.CreateFromSnapshot(snapshot))
	if err != nil {
		return errors.NewTracer("kafka_snapshot_encode_error").Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(snapshot.Symbol),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "symbol", Value: snapshot.Symbol},
			logger.Field{Key: "sequence_number", Value: snapshot.SequenceNumber},
		)
		return errors.NewTracer("kafka_snapshot_publish_error").Wrap(err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
