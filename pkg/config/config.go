package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	kafkafeed "github.com/muhammadchandra19/book-builder/internal/infrastructure/kafka/feed"
	kafkasnapshot "github.com/muhammadchandra19/book-builder/internal/infrastructure/kafka/snapshot"
	"github.com/muhammadchandra19/book-builder/internal/usecase/decoder"
	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/questdb"
	"github.com/muhammadchandra19/book-builder/pkg/redis"
)

// Feed source kinds.
const (
	SourceFile  = "file"
	SourceKafka = "kafka"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	env.Must(cfg, Load(cfg))
}

// Load loads the configuration from environment variables and an optional
// .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for a book-builder run.
type Config struct {
	App  AppConfig  `envPrefix:"APP_"`
	Book BookConfig `envPrefix:"BOOK_"`
	Feed FeedConfig `envPrefix:"FEED_"`
	Sink SinkConfig `envPrefix:"SINK_"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"book-builder"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// BookConfig holds the order book and decoder settings.
type BookConfig struct {
	Depth          uint32 `env:"DEPTH" envDefault:"5"`
	StrictReserved bool   `env:"STRICT_RESERVED" envDefault:"false"`
	MaxMessageSize uint32 `env:"MAX_MESSAGE_SIZE" envDefault:"1048576"`
}

// DecoderOptions returns the decoder settings of the book section.
func (b BookConfig) DecoderOptions() *decoder.Options {
	return &decoder.Options{
		StrictReserved: b.StrictReserved,
		MaxMessageSize: b.MaxMessageSize,
	}
}

// FeedConfig selects where events are read from.
type FeedConfig struct {
	Kind  string           `env:"KIND" envDefault:"file"`
	Path  string           `env:"PATH"`
	Kafka kafkafeed.Config `envPrefix:"KAFKA_"`
}

// SinkConfig holds the optional snapshot sinks. Formatted lines always go to
// standard output.
type SinkConfig struct {
	Kafka   KafkaSinkConfig   `envPrefix:"KAFKA_"`
	Redis   RedisSinkConfig   `envPrefix:"REDIS_"`
	QuestDB QuestDBSinkConfig `envPrefix:"QUESTDB_"`
	Pebble  PebbleSinkConfig  `envPrefix:"PEBBLE_"`
}

// KafkaSinkConfig enables the Kafka snapshot topic.
type KafkaSinkConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	kafkasnapshot.Config
}

// RedisSinkConfig enables the Redis latest-snapshot cache.
type RedisSinkConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	redis.Config
}

// QuestDBSinkConfig enables the QuestDB snapshot history.
type QuestDBSinkConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	questdb.Config
}

// PebbleSinkConfig enables the local snapshot journal.
type PebbleSinkConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Dir     string `env:"DIR" envDefault:"./data/snapshots"`
	Sync    bool   `env:"SYNC" envDefault:"false"`
}

// Validate reports every inconsistent setting at once. It returns nil or a
// *errors.BaseError.
func (c *Config) Validate() error {
	result := errors.NewBaseError()

	if c.Book.Depth == 0 {
		result.AddErrorDetails(errors.NewErrorDetails("book depth must be a positive integer", errors.ConfigDepthError, "BOOK_DEPTH"))
	}

	switch c.Feed.Kind {
	case SourceFile:
		if c.Feed.Path == "" {
			result.AddErrorDetails(errors.NewErrorDetails("feed file path is empty", errors.ConfigSourceError, "FEED_PATH"))
		}
	case SourceKafka:
		if len(c.Feed.Kafka.Brokers) == 0 {
			result.AddErrorDetails(errors.NewErrorDetails("feed kafka brokers are empty", errors.ConfigSourceError, "FEED_KAFKA_BROKERS"))
		}
		if c.Feed.Kafka.Topic == "" {
			result.AddErrorDetails(errors.NewErrorDetails("feed kafka topic is empty", errors.ConfigSourceError, "FEED_KAFKA_TOPIC"))
		}
	default:
		result.AddErrorDetails(errors.NewErrorDetails("feed kind must be file or kafka, got "+c.Feed.Kind, errors.ConfigSourceError, "FEED_KIND"))
	}

	if c.Sink.Kafka.Enabled {
		if err := c.Sink.Kafka.Validate(); err != nil {
			result.AddErrorDetails(errors.NewErrorDetails(err.Error(), errors.ConfigSinkError, "SINK_KAFKA"))
		}
	}
	if c.Sink.Redis.Enabled {
		if err := c.Sink.Redis.Validate(); err != nil {
			result.AddErrorDetails(errors.NewErrorDetails(err.Error(), errors.ConfigSinkError, "SINK_REDIS"))
		}
	}
	if c.Sink.QuestDB.Enabled {
		if err := c.Sink.QuestDB.Validate(); err != nil {
			result.AddErrorDetails(errors.NewErrorDetails(err.Error(), errors.ConfigSinkError, "SINK_QUESTDB"))
		}
	}
	if c.Sink.Pebble.Enabled && c.Sink.Pebble.Dir == "" {
		result.AddErrorDetails(errors.NewErrorDetails("pebble sink directory is empty", errors.ConfigSinkError, "SINK_PEBBLE_DIR"))
	}

	if !result.HasDetails() {
		return nil
	}
	return result
}
