package sink

import (
	"bufio"
	"context"
	"io"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	snapshotpublisherv1 "github.com/muhammadchandra19/book-builder/internal/domain/snapshot-publisher/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/formatter"
)

// Console writes one formatted line per snapshot.
type Console struct {
	w *bufio.Writer
}

var _ snapshotpublisherv1.Publisher = (*Console)(nil)

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: bufio.NewWriter(w)}
}

// Publish writes the formatted snapshot followed by a newline.
func (c *Console) Publish(_ context.Context, snapshot *orderbookv1.Snapshot) error {
	if _, err := c.w.WriteString(formatter.FormatSnapshot(snapshot)); err != nil {
		return err
	}
	return c.w.WriteByte('\n')
}

// Flush writes any buffered lines.
func (c *Console) Flush() error {
	return c.w.Flush()
}

// Close flushes buffered lines. The underlying writer is left open.
func (c *Console) Close() error {
	return c.Flush()
}
