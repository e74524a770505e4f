package util

import (
	"context"
)

// FieldsFromContext collects the values this package stores in a context.
type FieldsFromContext struct{}

type key string

const (
	runIDKey  = key("run-id")
	sourceKey = key("feed-source")
)

// Fields returns a map of the key-value pairs that this library has set into `context`.
func (f *FieldsFromContext) Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["run_id"] = GetRunID(ctx)
	mapFields["source"] = GetSource(ctx)

	return mapFields
}

// WithSource returns a context carrying the feed location being replayed.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetSource returns the feed location from context
// will return empty string if not present
func GetSource(ctx context.Context) string {
	source, _ := ctx.Value(sourceKey).(string)
	return source
}
