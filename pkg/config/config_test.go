package config

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "book-builder", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, uint32(5), cfg.Book.Depth)
	assert.Equal(t, uint32(1<<20), cfg.Book.MaxMessageSize)
	assert.Equal(t, SourceFile, cfg.Feed.Kind)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Feed.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.Feed.Kafka.IdleTimeout)
	assert.False(t, cfg.Sink.Kafka.Enabled)
	assert.Equal(t, "book-snapshots", cfg.Sink.Kafka.Topic)
	assert.Equal(t, "book-builder:", cfg.Sink.Redis.PrefixKey)
	assert.Equal(t, 8812, cfg.Sink.QuestDB.Port)
	assert.Equal(t, "./data/snapshots", cfg.Sink.Pebble.Dir)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BOOK_DEPTH", "10")
	t.Setenv("BOOK_STRICT_RESERVED", "true")
	t.Setenv("FEED_KIND", "kafka")
	t.Setenv("FEED_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("FEED_KAFKA_TOPIC", "feed")
	t.Setenv("SINK_REDIS_ENABLED", "true")
	t.Setenv("SINK_REDIS_ADDRS", "cache:6379")
	t.Setenv("SINK_REDIS_MODE", "cluster")
	t.Setenv("SINK_QUESTDB_HOST", "questdb")
	t.Setenv("SINK_PEBBLE_SYNC", "true")

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, uint32(10), cfg.Book.Depth)
	assert.True(t, cfg.Book.DecoderOptions().StrictReserved)
	assert.Equal(t, SourceKafka, cfg.Feed.Kind)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Feed.Kafka.Brokers)
	assert.Equal(t, "feed", cfg.Feed.Kafka.Topic)
	assert.True(t, cfg.Sink.Redis.Enabled)
	assert.Equal(t, []string{"cache:6379"}, cfg.Sink.Redis.Addrs)
	assert.Equal(t, "cluster", string(cfg.Sink.Redis.Mode))
	assert.Equal(t, "questdb", cfg.Sink.QuestDB.Host)
	assert.True(t, cfg.Sink.Pebble.Sync)
	require.NoError(t, cfg.Validate())
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{}
	require.NoError(t, Load(cfg))
	cfg.Feed.Path = "feed.bin"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name       string
		mutate     func(cfg *Config)
		wantFields []string
		wantCode   errors.ErrorCode
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:       "zero depth",
			mutate:     func(cfg *Config) { cfg.Book.Depth = 0 },
			wantFields: []string{"BOOK_DEPTH"},
			wantCode:   errors.ConfigDepthError,
		},
		{
			name:       "missing path",
			mutate:     func(cfg *Config) { cfg.Feed.Path = "" },
			wantFields: []string{"FEED_PATH"},
			wantCode:   errors.ConfigSourceError,
		},
		{
			name:       "unknown kind",
			mutate:     func(cfg *Config) { cfg.Feed.Kind = "http" },
			wantFields: []string{"FEED_KIND"},
			wantCode:   errors.ConfigSourceError,
		},
		{
			name: "kafka feed without topic",
			mutate: func(cfg *Config) {
				cfg.Feed.Kind = SourceKafka
				cfg.Feed.Kafka.Topic = ""
				cfg.Feed.Kafka.Brokers = nil
			},
			wantFields: []string{"FEED_KAFKA_BROKERS", "FEED_KAFKA_TOPIC"},
			wantCode:   errors.ConfigSourceError,
		},
		{
			name: "enabled sinks with missing settings",
			mutate: func(cfg *Config) {
				cfg.Sink.Kafka.Enabled = true
				cfg.Sink.Kafka.Topic = ""
				cfg.Sink.Redis.Enabled = true
				cfg.Sink.Redis.Addrs = nil
				cfg.Sink.QuestDB.Enabled = true
				cfg.Sink.QuestDB.Host = ""
				cfg.Sink.Pebble.Enabled = true
				cfg.Sink.Pebble.Dir = ""
			},
			wantFields: []string{"SINK_KAFKA", "SINK_REDIS", "SINK_QUESTDB", "SINK_PEBBLE_DIR"},
			wantCode:   errors.ConfigSinkError,
		},
		{
			name: "disabled sinks are not checked",
			mutate: func(cfg *Config) {
				cfg.Sink.Redis.Addrs = nil
				cfg.Sink.QuestDB.Host = ""
				cfg.Sink.Pebble.Dir = ""
			},
		},
		{
			name: "every problem is reported",
			mutate: func(cfg *Config) {
				cfg.Book.Depth = 0
				cfg.Feed.Path = ""
			},
			wantFields: []string{"BOOK_DEPTH", "FEED_PATH"},
			wantCode:   errors.ConfigDepthError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var baseErr *errors.BaseError
			require.ErrorAs(t, err, &baseErr)
			assert.Equal(t, tc.wantFields, baseErr.Fields())
			assert.True(t, baseErr.IsAnyCodeEqual(tc.wantCode))
		})
	}
}
