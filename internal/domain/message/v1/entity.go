package messagev1

import "errors"

// ErrMalformedMessage is returned when a framed record cannot be decoded.
var ErrMalformedMessage = errors.New("malformed message")

const (
	// HeaderSize is the byte length of the record header.
	HeaderSize = 8
	// CommonSize is the byte length of the body prefix shared by every kind.
	CommonSize = 16
	// OrderSuffixSize is the suffix length of Added and Updated bodies.
	OrderSuffixSize = 16
	// ExecutedSuffixSize is the suffix length of Executed bodies.
	ExecutedSuffixSize = 8
	// SymbolSize is the fixed width of the symbol field.
	SymbolSize = 3
)

// Kind is the message-kind tag, the first byte of every body.
type Kind byte

const (
	// KindAdded tags a new resting order.
	KindAdded Kind = 'A'
	// KindUpdated tags a price and/or size change of a resting order.
	KindUpdated Kind = 'U'
	// KindDeleted tags the removal of a resting order.
	KindDeleted Kind = 'D'
	// KindExecuted tags a trade against a resting order.
	KindExecuted Kind = 'E'
)

// Valid reports whether k is one of the four recognised tags.
func (k Kind) Valid() bool {
	switch k {
	case KindAdded, KindUpdated, KindDeleted, KindExecuted:
		return true
	}
	return false
}

// BodySize returns the number of body bytes the kind's layout needs.
func (k Kind) BodySize() int {
	switch k {
	case KindAdded, KindUpdated:
		return CommonSize + OrderSuffixSize
	case KindExecuted:
		return CommonSize + ExecutedSuffixSize
	default:
		return CommonSize
	}
}

func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindUpdated:
		return "updated"
	case KindDeleted:
		return "deleted"
	case KindExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// Side is the side tag of an order.
type Side byte

const (
	// SideBuy is the bid side.
	SideBuy Side = 'B'
	// SideSell is the ask side.
	SideSell Side = 'S'
)

// Valid reports whether s is Buy or Sell.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// Header is the fixed-size record header.
type Header struct {
	SequenceNumber uint32
	MessageSize    uint32
}

// Common holds the fields every message carries.
type Common struct {
	SequenceNumber uint32
	Symbol         string
	OrderID        uint64
	Side           Side
}

// Envelope returns the shared fields of a message.
func (c Common) Envelope() Common {
	return c
}

// Message is the closed set of decoded events: *Added, *Updated, *Deleted and *Executed.
type Message interface {
	Kind() Kind
	Envelope() Common
}

// Added is a new resting order.
type Added struct {
	Common
	Size  uint64
	Price int32
}

// Kind implements Message.
func (*Added) Kind() Kind { return KindAdded }

// Updated replaces the size and price of a resting order.
type Updated struct {
	Common
	Size  uint64
	Price int32
}

// Kind implements Message.
func (*Updated) Kind() Kind { return KindUpdated }

// Deleted removes a resting order.
type Deleted struct {
	Common
}

// Kind implements Message.
func (*Deleted) Kind() Kind { return KindDeleted }

// Executed reports a trade of TradedQuantity against a resting order.
type Executed struct {
	Common
	TradedQuantity uint64
}

// Kind implements Message.
func (*Executed) Kind() Kind { return KindExecuted }
