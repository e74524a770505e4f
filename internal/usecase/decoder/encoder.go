package decoder

import (
	"encoding/binary"
	"fmt"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
)

// Encode renders msg as one framed record: header followed by the kind's
// layout, symbol right-padded with spaces and reserved bytes zeroed.
func Encode(msg messagev1.Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("encode: nil message")
	}

	env := msg.Envelope()
	if len(env.Symbol) > messagev1.SymbolSize {
		return nil, fmt.Errorf("encode: symbol %q longer than %d bytes", env.Symbol, messagev1.SymbolSize)
	}

	kind := msg.Kind()
	body := make([]byte, kind.BodySize())
	body[0] = byte(kind)
	copy(body[1:1+messagev1.SymbolSize], fmt.Sprintf("%-3s", env.Symbol))
	binary.LittleEndian.PutUint64(body[4:12], env.OrderID)
	body[12] = byte(env.Side)

	suffix := body[messagev1.CommonSize:]
	switch m := msg.(type) {
	case *messagev1.Added:
		binary.LittleEndian.PutUint64(suffix[0:8], m.Size)
		binary.LittleEndian.PutUint32(suffix[8:12], uint32(m.Price))
	case *messagev1.Updated:
		binary.LittleEndian.PutUint64(suffix[0:8], m.Size)
		binary.LittleEndian.PutUint32(suffix[8:12], uint32(m.Price))
	case *messagev1.Deleted:
	case *messagev1.Executed:
		binary.LittleEndian.PutUint64(suffix[0:8], m.TradedQuantity)
	default:
		return nil, fmt.Errorf("encode: unsupported message %T", msg)
	}

	frame := Frame{
		Header: messagev1.Header{SequenceNumber: env.SequenceNumber, MessageSize: uint32(len(body))},
		Body:   body,
	}
	return frame.Bytes(), nil
}
