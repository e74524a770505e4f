package feedgen

import (
	"fmt"
	"math/rand"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	"github.com/muhammadchandra19/book-builder/pkg/errors"
)

// Options shapes a generated feed.
type Options struct {
	Symbols     []string
	BasePrice   int32
	PriceSpread int32
	MaxSize     uint64
	Seed        int64
}

// DefaultOptions returns a small two-symbol feed configuration.
func DefaultOptions() *Options {
	return &Options{
		Symbols:     []string{"NVD", "AAP"},
		BasePrice:   3945,
		PriceSpread: 200,
		MaxSize:     1000,
		Seed:        1,
	}
}

type resting struct {
	id    uint64
	side  messagev1.Side
	size  uint64
	price int32
}

// Generator produces a random feed that a book accepts event by event:
// updates, deletes and executions only reference orders it has added and
// not yet removed.
type Generator struct {
	opts   Options
	rnd    *rand.Rand
	seq    uint32
	nextID uint64
	books  map[string][]resting
}

// NewGenerator validates opts and creates a generator.
func NewGenerator(opts *Options) (*Generator, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(opts.Symbols) == 0 {
		return nil, errors.NewErrorDetails("at least one symbol is required", errors.GeneralInvalidInputError, "symbols")
	}
	for _, s := range opts.Symbols {
		if s == "" || len(s) > messagev1.SymbolSize {
			return nil, errors.NewErrorDetails(fmt.Sprintf("symbol %q must be 1 to %d bytes", s, messagev1.SymbolSize), errors.GeneralInvalidInputError, "symbols")
		}
	}
	if opts.PriceSpread <= 0 || opts.BasePrice <= opts.PriceSpread {
		return nil, errors.NewErrorDetails(fmt.Sprintf("base price %d must exceed a positive spread %d", opts.BasePrice, opts.PriceSpread), errors.GeneralInvalidInputError, "price_spread")
	}
	if opts.MaxSize == 0 {
		return nil, errors.NewErrorDetails("max size must be positive", errors.GeneralInvalidInputError, "max_size")
	}

	return &Generator{
		opts:  *opts,
		rnd:   rand.New(rand.NewSource(opts.Seed)),
		books: make(map[string][]resting, len(opts.Symbols)),
	}, nil
}

// Resting returns the number of live orders of symbol.
func (g *Generator) Resting(symbol string) int {
	return len(g.books[symbol])
}

// Next returns the next event. Sequence numbers start at 1.
func (g *Generator) Next() messagev1.Message {
	g.seq++
	symbol := g.opts.Symbols[g.rnd.Intn(len(g.opts.Symbols))]
	orders := g.books[symbol]

	roll := g.rnd.Float64()
	switch {
	case len(orders) == 0 || roll < 0.5:
		return g.add(symbol)
	case roll < 0.65:
		return g.update(symbol)
	case roll < 0.8:
		return g.remove(symbol)
	default:
		return g.execute(symbol)
	}
}

func (g *Generator) side() messagev1.Side {
	if g.rnd.Intn(2) == 0 {
		return messagev1.SideBuy
	}
	return messagev1.SideSell
}

// price places bids below and asks above the base price.
func (g *Generator) price(side messagev1.Side) int32 {
	offset := g.rnd.Int31n(g.opts.PriceSpread) + 1
	if side == messagev1.SideBuy {
		return g.opts.BasePrice - offset
	}
	return g.opts.BasePrice + offset
}

func (g *Generator) size() uint64 {
	return uint64(g.rnd.Int63n(int64(g.opts.MaxSize))) + 1
}

func (g *Generator) common(symbol string, o resting) messagev1.Common {
	return messagev1.Common{SequenceNumber: g.seq, Symbol: symbol, OrderID: o.id, Side: o.side}
}

func (g *Generator) add(symbol string) messagev1.Message {
	g.nextID++
	side := g.side()
	o := resting{id: g.nextID, side: side, size: g.size(), price: g.price(side)}
	g.books[symbol] = append(g.books[symbol], o)

	return &messagev1.Added{Common: g.common(symbol, o), Size: o.size, Price: o.price}
}

func (g *Generator) update(symbol string) messagev1.Message {
	i := g.rnd.Intn(len(g.books[symbol]))
	o := &g.books[symbol][i]
	o.size = g.size()
	o.price = g.price(o.side)

	return &messagev1.Updated{Common: g.common(symbol, *o), Size: o.size, Price: o.price}
}

func (g *Generator) remove(symbol string) messagev1.Message {
	o := g.take(symbol, g.rnd.Intn(len(g.books[symbol])))
	return &messagev1.Deleted{Common: g.common(symbol, o)}
}

func (g *Generator) execute(symbol string) messagev1.Message {
	orders := g.books[symbol]
	i := g.rnd.Intn(len(orders))
	o := orders[i]

	traded := uint64(g.rnd.Int63n(int64(o.size))) + 1
	if traded == o.size {
		g.take(symbol, i)
	} else {
		orders[i].size -= traded
	}
	return &messagev1.Executed{Common: g.common(symbol, o), TradedQuantity: traded}
}

// take swap-removes the i-th order of symbol.
func (g *Generator) take(symbol string, i int) resting {
	orders := g.books[symbol]
	o := orders[i]
	last := len(orders) - 1
	orders[i] = orders[last]
	g.books[symbol] = orders[:last]
	return o
}
