package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	feedv1 "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1"
	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/decoder"
)

const readBufferSize = 64 << 10

// Source decodes framed records from a byte stream, one per Next.
type Source struct {
	reader  *bufio.Reader
	closer  io.Closer
	decoder *decoder.Decoder
}

var _ feedv1.Source = (*Source)(nil)

// Open opens a feed file. A missing file fails with feedv1.ErrSourceNotFound
// and a zero-length one with feedv1.ErrSourceEmpty, before any record is read.
func Open(path string, opts *decoder.Options) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", feedv1.ErrSourceNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", feedv1.ErrSourceNotFound, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", feedv1.ErrSourceEmpty, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	s := NewReaderSource(f, opts)
	s.closer = f
	return s, nil
}

// NewReaderSource decodes records from r. Closing the source does not close r.
func NewReaderSource(r io.Reader, opts *decoder.Options) *Source {
	return &Source{
		reader:  bufio.NewReaderSize(r, readBufferSize),
		decoder: decoder.NewDecoder(opts),
	}
}

// Next decodes the next record. It returns io.EOF at a clean end of input.
func (s *Source) Next(ctx context.Context) (messagev1.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.decoder.Decode(s.reader)
}

// Close releases the underlying file, if the source opened one.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
