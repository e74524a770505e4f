package formatter

import (
	"strconv"
	"strings"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
)

// FormatSnapshot renders a snapshot as
// "seq, SYM, [(price, volume), ...], [(price, volume), ...]", bids first.
func FormatSnapshot(snapshot *orderbookv1.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(snapshot.SequenceNumber), 10))
	sb.WriteString(", ")
	sb.WriteString(snapshot.Symbol)
	sb.WriteString(", ")
	writeLevels(&sb, snapshot.Bids)
	sb.WriteString(", ")
	writeLevels(&sb, snapshot.Asks)
	return sb.String()
}

func writeLevels(sb *strings.Builder, levels []orderbookv1.Level) {
	sb.WriteByte('[')
	for i, l := range levels {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatInt(int64(l.Price), 10))
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatUint(l.Volume, 10))
		sb.WriteByte(')')
	}
	sb.WriteByte(']')
}
