package main

import (
	"context"

	feedv1 "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	filefeed "github.com/muhammadchandra19/book-builder/internal/infrastructure/file/feed"
	kafkafeed "github.com/muhammadchandra19/book-builder/internal/infrastructure/kafka/feed"
	kafkasnapshot "github.com/muhammadchandra19/book-builder/internal/infrastructure/kafka/snapshot"
	pebblesnapshot "github.com/muhammadchandra19/book-builder/internal/infrastructure/pebble/snapshot"
	questdbsnapshot "github.com/muhammadchandra19/book-builder/internal/infrastructure/questdb/snapshot"
	redissnapshot "github.com/muhammadchandra19/book-builder/internal/infrastructure/redis/snapshot"
	"github.com/muhammadchandra19/book-builder/internal/usecase/sink"
	"github.com/muhammadchandra19/book-builder/pkg/config"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/questdb"
	"github.com/muhammadchandra19/book-builder/pkg/redis"
)

// openSource returns the configured feed and a label for logging.
func openSource(cfg *config.Config, log logger.Interface) (feedv1.Source, string, error) {
	opts := cfg.Book.DecoderOptions()

	if cfg.Feed.Kind == config.SourceKafka {
		if err := cfg.Feed.Kafka.Validate(); err != nil {
			return nil, "", err
		}
		label := "kafka://" + cfg.Feed.Kafka.Topic
		return kafkafeed.NewSource(cfg.Feed.Kafka, opts, log), label, nil
	}

	source, err := filefeed.Open(cfg.Feed.Path, opts)
	if err != nil {
		return nil, cfg.Feed.Path, err
	}
	return source, cfg.Feed.Path, nil
}

// openSinks connects every enabled sink. On failure the sinks opened so far
// are closed.
func openSinks(ctx context.Context, cfg *config.Config, log logger.Interface) (*sink.Multi, error) {
	var publishers []snapshotpublisherv1.Publisher
	fail := func(err error) (*sink.Multi, error) {
		_ = sink.NewMulti(publishers...).Close()
		return nil, err
	}

	if cfg.Sink.Pebble.Enabled {
		journal, err := pebblesnapshot.Open(cfg.Sink.Pebble.Dir, cfg.Sink.Pebble.Sync)
		if err != nil {
			return fail(err)
		}
		publishers = append(publishers, journal)
	}

	if cfg.Sink.Redis.Enabled {
		redisConfig := cfg.Sink.Redis.Config
		client := redis.NewClient(log, &redisConfig)
		if err := client.Connect(ctx); err != nil {
			return fail(err)
		}
		publishers = append(publishers, redissnapshot.NewStore(client, &redisConfig, log))
	}

	if cfg.Sink.QuestDB.Enabled {
		client, err := questdb.NewClient(ctx, cfg.Sink.QuestDB.Config)
		if err != nil {
			return fail(err)
		}
		publishers = append(publishers, questdbsnapshot.NewRepository(client))
	}

	if cfg.Sink.Kafka.Enabled {
		publishers = append(publishers, kafkasnapshot.NewPublisher(cfg.Sink.Kafka.Config, log))
	}

	for _, name := range enabledSinks(cfg) {
		log.Info("snapshot sink enabled", logger.Field{Key: "sink", Value: name})
	}
	return sink.NewMulti(publishers...), nil
}

func enabledSinks(cfg *config.Config) []string {
	names := []string{}
	if cfg.Sink.Pebble.Enabled {
		names = append(names, "pebble")
	}
	if cfg.Sink.Redis.Enabled {
		names = append(names, "redis")
	}
	if cfg.Sink.QuestDB.Enabled {
		names = append(names, "questdb")
	}
	if cfg.Sink.Kafka.Enabled {
		names = append(names, "kafka")
	}
	return names
}
