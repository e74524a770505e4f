package decoder

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	messagev1 "github.com/muhammadchandra19/book-builder/internal/domain/message/v1"
)

// DefaultMaxMessageSize bounds the body allocation for a single record.
const DefaultMaxMessageSize uint32 = 1 << 20

// Options configures a Decoder.
type Options struct {
	// StrictReserved rejects records whose reserved bytes are not zero.
	StrictReserved bool
	// MaxMessageSize rejects headers declaring a larger body.
	MaxMessageSize uint32
}

// DefaultOptions returns the lenient decoder configuration.
func DefaultOptions() *Options {
	return &Options{
		MaxMessageSize: DefaultMaxMessageSize,
	}
}

// Frame is one undecoded record: its header and exactly MessageSize body bytes.
type Frame struct {
	Header messagev1.Header
	Body   []byte
}

// Bytes re-encodes the frame in wire form.
func (f Frame) Bytes() []byte {
	buf := make([]byte, messagev1.HeaderSize+len(f.Body))
	binary.LittleEndian.PutUint32(buf[0:4], f.Header.SequenceNumber)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(f.Body)))
	copy(buf[messagev1.HeaderSize:], f.Body)
	return buf
}

// Kind returns the message-kind tag of the body, or 0 for an empty body.
func (f Frame) Kind() messagev1.Kind {
	if len(f.Body) == 0 {
		return 0
	}
	return messagev1.Kind(f.Body[0])
}

// Decoder turns framed little-endian records into messages.
type Decoder struct {
	opts Options
}

// NewDecoder creates a Decoder. A nil opts uses DefaultOptions.
func NewDecoder(opts *Options) *Decoder {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.MaxMessageSize == 0 {
		o.MaxMessageSize = DefaultMaxMessageSize
	}
	return &Decoder{opts: o}
}

// ReadFrame reads one header and exactly MessageSize body bytes from r.
// It returns io.EOF only when r is exhausted at a record boundary.
func (d *Decoder) ReadFrame(r io.Reader) (Frame, error) {
	var header [messagev1.HeaderSize]byte
	n, err := io.ReadFull(r, header[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return Frame{}, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return Frame{}, fmt.Errorf("%w: truncated header, got %d of %d bytes", messagev1.ErrMalformedMessage, n, messagev1.HeaderSize)
		}
		return Frame{}, err
	}

	h := messagev1.Header{
		SequenceNumber: binary.LittleEndian.Uint32(header[0:4]),
		MessageSize:    binary.LittleEndian.Uint32(header[4:8]),
	}
	if h.MessageSize > d.opts.MaxMessageSize {
		return Frame{}, fmt.Errorf("%w: seq %d declares %d body bytes, limit is %d", messagev1.ErrMalformedMessage, h.SequenceNumber, h.MessageSize, d.opts.MaxMessageSize)
	}

	body := make([]byte, h.MessageSize)
	n, err = io.ReadFull(r, body)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Frame{}, fmt.Errorf("%w: seq %d truncated body, got %d of %d bytes", messagev1.ErrMalformedMessage, h.SequenceNumber, n, h.MessageSize)
		}
		return Frame{}, err
	}

	return Frame{Header: h, Body: body}, nil
}

// Decode reads and decodes the next record from r.
func (d *Decoder) Decode(r io.Reader) (messagev1.Message, error) {
	frame, err := d.ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return d.DecodeBody(frame.Header.SequenceNumber, frame.Body)
}

// DecodeFrame decodes a frame previously returned by ReadFrame.
func (d *Decoder) DecodeFrame(frame Frame) (messagev1.Message, error) {
	return d.DecodeBody(frame.Header.SequenceNumber, frame.Body)
}

// DecodeBody decodes a body already cut to its declared size. Bytes beyond the
// kind's layout are ignored.
func (d *Decoder) DecodeBody(seq uint32, body []byte) (messagev1.Message, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: seq %d has an empty body", messagev1.ErrMalformedMessage, seq)
	}

	kind := messagev1.Kind(body[0])
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: seq %d has unknown message kind %q", messagev1.ErrMalformedMessage, seq, body[0])
	}
	if len(body) < kind.BodySize() {
		return nil, fmt.Errorf("%w: seq %d %s body is %d bytes, layout needs %d", messagev1.ErrMalformedMessage, seq, kind, len(body), kind.BodySize())
	}

	common, err := d.decodeCommon(seq, body)
	if err != nil {
		return nil, err
	}

	suffix := body[messagev1.CommonSize:]
	switch kind {
	case messagev1.KindAdded:
		size, price, err := d.decodeOrderSuffix(seq, suffix)
		if err != nil {
			return nil, err
		}
		return &messagev1.Added{Common: common, Size: size, Price: price}, nil
	case messagev1.KindUpdated:
		size, price, err := d.decodeOrderSuffix(seq, suffix)
		if err != nil {
			return nil, err
		}
		return &messagev1.Updated{Common: common, Size: size, Price: price}, nil
	case messagev1.KindDeleted:
		return &messagev1.Deleted{Common: common}, nil
	default:
		return &messagev1.Executed{
			Common:         common,
			TradedQuantity: binary.LittleEndian.Uint64(suffix[0:8]),
		}, nil
	}
}

func (d *Decoder) decodeCommon(seq uint32, body []byte) (messagev1.Common, error) {
	side := messagev1.Side(body[12])
	if !side.Valid() {
		return messagev1.Common{}, fmt.Errorf("%w: seq %d has unknown side %q", messagev1.ErrMalformedMessage, seq, body[12])
	}
	if err := d.checkReserved(seq, body[13:16]); err != nil {
		return messagev1.Common{}, err
	}

	return messagev1.Common{
		SequenceNumber: seq,
		Symbol:         strings.TrimRight(string(body[1:1+messagev1.SymbolSize]), " \x00"),
		OrderID:        binary.LittleEndian.Uint64(body[4:12]),
		Side:           side,
	}, nil
}

func (d *Decoder) decodeOrderSuffix(seq uint32, suffix []byte) (uint64, int32, error) {
	if err := d.checkReserved(seq, suffix[12:16]); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint64(suffix[0:8]), int32(binary.LittleEndian.Uint32(suffix[8:12])), nil
}

func (d *Decoder) checkReserved(seq uint32, reserved []byte) error {
	if !d.opts.StrictReserved {
		return nil
	}
	for _, b := range reserved {
		if b != 0 {
			return fmt.Errorf("%w: seq %d has non-zero reserved bytes", messagev1.ErrMalformedMessage, seq)
		}
	}
	return nil
}
