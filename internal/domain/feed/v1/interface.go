package feedv1

import (
	"context"
	"errors"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
)

var (
	// ErrSourceNotFound is returned when the feed location does not exist.
	ErrSourceNotFound = errors.New("feed source does not exist")
	// ErrSourceEmpty is returned when the feed location holds no bytes.
	ErrSourceEmpty = errors.New("feed source is empty")
)

// Source yields decoded messages in feed order. Next returns io.EOF once the
// feed is exhausted at a record boundary.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=feedv1_mock
type Source interface {
	Next(ctx context.Context) (messagev1.Message, error)
	Close() error
}
