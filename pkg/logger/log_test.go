package logger

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{logger: zap.New(core)}, logs
}

func TestLogger_InfoContext(t *testing.T) {
	log, logs := newObservedLogger()
	ctx := util.WithSource(util.WithRunID(context.Background(), "run-42"), "input1.stream")

	log.InfoContext(ctx, "book created", NewField("symbol", "NVD"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "book created", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "NVD", fields["symbol"])
	assert.Equal(t, "run-42", fields["run_id"])
	assert.Equal(t, "input1.stream", fields["source"])
}

func TestLogger_Error(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		wantStack bool
	}{
		{
			name:      "tracer carries stack",
			err:       errors.NewTracer("engine_process_error").Wrap(stderrors.New("boom")),
			wantStack: true,
		},
		{
			name:      "plain error",
			err:       stderrors.New("boom"),
			wantStack: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := newObservedLogger()

			log.Error(tc.err, NewField("action", "process"))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, zapcore.ErrorLevel, entry.Level)
			assert.Equal(t, tc.err.Error(), entry.Message)
			if tc.wantStack {
				assert.NotEmpty(t, entry.Stack)
			}
		})
	}
}

func TestLogger_WithFields(t *testing.T) {
	log, logs := newObservedLogger()

	log.WithFields(NewField("symbol", "AAP")).Debug("level removed", NewField("price", int32(100)))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "AAP", fields["symbol"])
	assert.EqualValues(t, 100, fields["price"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func TestLogger_Error_Nil(t *testing.T) {
	log, logs := newObservedLogger()
	log.Error(nil)
	assert.Zero(t, logs.Len())
}

func TestNewLogger_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	log, err := NewLogger(
		WithLoggingLevel(WarnLevel),
		WithOutputPaths([]string{path}),
		WithTimeKey("ts"),
		WithInitialFields(NewField("app", "book-builder")),
	)
	require.NoError(t, err)

	log.Info("dropped below warn")
	log.Warn("sink slow", NewField("sink", "redis"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "sink slow", entry["message"])
	assert.Equal(t, "book-builder", entry["app"])
	assert.Equal(t, "redis", entry["sink"])
	assert.Contains(t, entry, "ts")
}
