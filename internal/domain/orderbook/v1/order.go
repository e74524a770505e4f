package orderbookv1

import (
	"errors"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrDuplicateOrder       = errors.New("order already exists")
	ErrOrderNotFound        = errors.New("order not found")
	ErrQuantityExceedsOrder = errors.New("traded quantity exceeds order size")
	ErrUnderflow            = errors.New("price level quantity underflow")
	ErrPriceMismatch        = errors.New("order price does not match price level")
)

// Order is a resting order. OrderID, Symbol and Side never change once the
// order is in a book.
type Order struct {
	OrderID uint64         `json:"orderID"`
	Symbol  string         `json:"symbol"`
	Side    messagev1.Side `json:"side"`
	Size    uint64         `json:"size"`
	Price   int32          `json:"price"`
}

// NewOrderFromAdded builds the order carried by an Added message.
func NewOrderFromAdded(m *messagev1.Added) Order {
	return Order{
		OrderID: m.OrderID,
		Symbol:  m.Symbol,
		Side:    m.Side,
		Size:    m.Size,
		Price:   m.Price,
	}
}

// NewOrderFromUpdated builds the replacement order carried by an Updated message.
func NewOrderFromUpdated(m *messagev1.Updated) Order {
	return Order{
		OrderID: m.OrderID,
		Symbol:  m.Symbol,
		Side:    m.Side,
		Size:    m.Size,
		Price:   m.Price,
	}
}

// IsBid checks if the order rests on the bid side.
func (o Order) IsBid() bool {
	return o.Side == messagev1.SideBuy
}

// IsFilled checks if the order has no quantity left.
func (o Order) IsFilled() bool {
	return o.Size == 0
}
