package engine

import (
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/orderbook"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
)

// Registry maps symbols to their books. Books are created on first use and
// share the registry depth.
type Registry struct {
	depth   uint32
	books   map[string]*orderbook.Orderbook
	symbols []string
	logger  logger.Interface
}

// NewRegistry creates an empty registry.
func NewRegistry(depth uint32, log logger.Interface) (*Registry, error) {
	if depth == 0 {
		return nil, fmt.Errorf("%w: depth must be positive", orderbookv1.ErrInvalidArgument)
	}

	return &Registry{
		depth:  depth,
		books:  make(map[string]*orderbook.Orderbook),
		logger: log,
	}, nil
}

// Book returns the book of symbol, creating it when it is first seen.
func (r *Registry) Book(symbol string) (*orderbook.Orderbook, error) {
	if book, ok := r.books[symbol]; ok {
		return book, nil
	}

	book, err := orderbook.NewOrderbook(symbol, r.depth)
	if err != nil {
		return nil, err
	}
	r.books[symbol] = book
	r.symbols = append(r.symbols, symbol)

	r.logger.Debug("order book created",
		logger.Field{Key: "symbol", Value: symbol},
		logger.Field{Key: "depth", Value: r.depth},
	)
	return book, nil
}

// Lookup returns the book of symbol without creating it.
func (r *Registry) Lookup(symbol string) (*orderbook.Orderbook, bool) {
	book, ok := r.books[symbol]
	return book, ok
}

// Symbols lists every symbol with a book, in first-seen order.
func (r *Registry) Symbols() []string {
	return append([]string(nil), r.symbols...)
}

// Len returns the number of books.
func (r *Registry) Len() int {
	return len(r.books)
}

// Depth returns the depth given to every book.
func (r *Registry) Depth() uint32 {
	return r.depth
}
