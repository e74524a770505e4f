package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadchandra19/book-builder/pkg/errors"
	"github.com/muhammadchandra19/book-builder/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is an interface that wraps the Logger methods.
type Interface interface {
	Debug(message string, fields ...Field)
	DebugContext(ctx context.Context, message string, fields ...Field)
	Error(err error, fields ...Field)
	ErrorContext(ctx context.Context, err error, fields ...Field)
	GetZap() *zap.Logger
	Info(message string, fields ...Field)
	InfoContext(ctx context.Context, message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WarnContext(ctx context.Context, message string, fields ...Field)
	WithFields(fields ...Field) *Logger
}

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

var _ Interface = (*Logger)(nil)

// Field holds key-value to be written to log.
type Field struct {
	Key   string
	Value any
}

// NewField returns Field with given key and value.
func NewField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Options holds configuration options for the logger. Each With* helper sets
// one of them; NewLogger applies them in order.
type Options struct {
	level           Level
	outputPaths     []string
	encoding        string
	timeKey         string
	levelKey        string
	callerTraceSkip int
	initialFields   []Field
}

// Level represents the severity level of the log.
type Level string

const (
	// DebugLevel is used for per-event diagnostics such as book creation.
	DebugLevel Level = "debug"
	// InfoLevel is used for run start and summary.
	InfoLevel Level = "info"
	// WarnLevel is used for recoverable sink trouble.
	WarnLevel Level = "warn"
	// ErrorLevel is used for errors that end a run.
	ErrorLevel Level = "error"

	messageKey = "message"
)

func (level Level) zapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a config string onto a Level, falling back to InfoLevel.
func ParseLevel(level string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(level))) {
	case DebugLevel:
		return DebugLevel
	case WarnLevel:
		return WarnLevel
	case ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// NewLogger creates new Logger instance with configuration options.
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	var buildOptions []zap.Option

	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.zapLevel())
		}
		if opt.outputPaths != nil {
			cfg.OutputPaths = opt.outputPaths
		}
		if opt.encoding != "" {
			cfg.Encoding = opt.encoding
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		if opt.timeKey != "" {
			cfg.EncoderConfig.TimeKey = opt.timeKey
		}
		if opt.levelKey != "" {
			cfg.EncoderConfig.LevelKey = opt.levelKey
		}
		if opt.callerTraceSkip > 0 {
			buildOptions = append(buildOptions, zap.AddCallerSkip(opt.callerTraceSkip))
		}
		if len(opt.initialFields) > 0 {
			buildOptions = append(buildOptions, zap.Fields(convertFields(opt.initialFields...)...))
		}
	}

	cfg.EncoderConfig.MessageKey = messageKey

	logger, err := cfg.Build(buildOptions...)
	if err != nil {
		return nil, err
	}
	return &Logger{logger: logger}, nil
}

// NewNopLogger returns a Logger that discards every entry.
func NewNopLogger() *Logger {
	return &Logger{logger: zap.NewNop()}
}

// WithLoggingLevel sets the minimum level written. Defaults to info.
func WithLoggingLevel(level Level) Options {
	return Options{level: level}
}

// WithOutputPaths sets where entries are written. "stdout" and "stderr" are
// the process streams; anything else is a file path. The CLI keeps stdout
// for snapshot lines and logs to stderr.
func WithOutputPaths(paths []string) Options {
	return Options{outputPaths: paths}
}

// WithConsoleEncoding switches from JSON to zap's human-readable encoder.
func WithConsoleEncoding() Options {
	return Options{encoding: "console"}
}

// WithTimeKey renames the time field of each entry.
func WithTimeKey(key string) Options {
	return Options{timeKey: key}
}

// WithLevelKey renames the severity field of each entry.
func WithLevelKey(key string) Options {
	return Options{levelKey: key}
}

// WithCallerTraceSkip will skip X lines from trace log
func WithCallerTraceSkip(skip int) Options {
	return Options{callerTraceSkip: skip}
}

// WithInitialFields attaches fields to every entry, e.g. the app name.
func WithInitialFields(fields ...Field) Options {
	return Options{initialFields: fields}
}

// Sync flush the buffered log entries
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap returns zap.Logger instance used by log.Logger
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

func (l *Logger) write(level zapcore.Level, message string, fields []Field) {
	if ce := l.logger.Check(level, message); ce != nil {
		ce.Write(convertFields(fields...)...)
	}
}

// Info write log with severity level info
func (l *Logger) Info(message string, fields ...Field) {
	l.write(zapcore.InfoLevel, message, fields)
}

// InfoContext is Info plus the run fields carried by ctx.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.write(zapcore.InfoLevel, message, withRunFields(ctx, fields))
}

// Warn write log with severity level warn
func (l *Logger) Warn(message string, fields ...Field) {
	l.write(zapcore.WarnLevel, message, fields)
}

// WarnContext is Warn plus the run fields carried by ctx.
func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.write(zapcore.WarnLevel, message, withRunFields(ctx, fields))
}

// Debug Write log with severity level debug
func (l *Logger) Debug(message string, fields ...Field) {
	l.write(zapcore.DebugLevel, message, fields)
}

// DebugContext is Debug plus the run fields carried by ctx.
func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.write(zapcore.DebugLevel, message, withRunFields(ctx, fields))
}

// Error writes err at error level. When err carries a pkg/errors stack trace
// it replaces zap's own caller stack.
func (l *Logger) Error(err error, fields ...Field) {
	if err == nil {
		return
	}

	ce := l.logger.Check(zapcore.ErrorLevel, err.Error())
	if ce == nil {
		return
	}
	if tracer, ok := err.(errors.StackTracer); ok {
		if stack := strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace())); stack != "" {
			ce.Stack = stack
		}
	}
	ce.Write(convertFields(fields...)...)
}

// ErrorContext is Error plus the run fields carried by ctx.
func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.Error(err, withRunFields(ctx, fields)...)
}

// WithFields returns a child logger with additional fields.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(convertFields(fields...)...)}
}

func convertFields(fields ...Field) []zapcore.Field {
	zapFields := make([]zapcore.Field, 0, len(fields))
	for _, field := range fields {
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}
	return zapFields
}

// withRunFields appends the run id and, when set, the feed source.
func withRunFields(ctx context.Context, fields []Field) []Field {
	out := make([]Field, 0, len(fields)+2)
	out = append(out, fields...)
	out = append(out, NewField("run_id", util.GetRunID(ctx)))
	if source := util.GetSource(ctx); source != "" {
		out = append(out, NewField("source", source))
	}
	return out
}
