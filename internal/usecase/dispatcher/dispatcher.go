package dispatcher

import (
	"fmt"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// Dispatch applies msg to book and returns the snapshot the book exposes
// afterwards, nil when the visible window did not change.
func Dispatch(msg messagev1.Message, book orderbookv1.Orderbook) (*orderbookv1.Snapshot, error) {
	if book == nil {
		return nil, fmt.Errorf("%w: nil order book", orderbookv1.ErrInvalidArgument)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", orderbookv1.ErrInvalidArgument)
	}

	var err error
	switch m := msg.(type) {
	case *messagev1.Added:
		if m == nil {
			return nil, fmt.Errorf("%w: nil added payload", orderbookv1.ErrInvalidArgument)
		}
		err = book.AddOrder(orderbookv1.NewOrderFromAdded(m), m.SequenceNumber)
	case *messagev1.Updated:
		if m == nil {
			return nil, fmt.Errorf("%w: nil updated payload", orderbookv1.ErrInvalidArgument)
		}
		err = book.UpdateOrder(orderbookv1.NewOrderFromUpdated(m), m.SequenceNumber)
	case *messagev1.Deleted:
		if m == nil {
			return nil, fmt.Errorf("%w: nil deleted payload", orderbookv1.ErrInvalidArgument)
		}
		err = book.DeleteOrder(m.OrderID, m.Side, m.SequenceNumber)
	case *messagev1.Executed:
		if m == nil {
			return nil, fmt.Errorf("%w: nil executed payload", orderbookv1.ErrInvalidArgument)
		}
		err = book.ExecuteOrder(m.OrderID, m.Side, m.TradedQuantity, m.SequenceNumber)
	default:
		return nil, fmt.Errorf("%w: message type %T", orderbookv1.ErrUnsupportedOperation, msg)
	}
	if err != nil {
		return nil, err
	}

	return book.GetSnapshot(), nil
}
