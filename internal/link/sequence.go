package link

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Sequencer hands out sequence tokens for outbound packets. Tokens must fit
// packet.SeqSize and must not contain the delimiter.
type Sequencer interface {
	Next() string
}

// CounterSequencer yields decimal tokens 1, 2, 3, ...
type CounterSequencer struct {
	n atomic.Uint64
}

func (c *CounterSequencer) Next() string {
	return strconv.FormatUint(c.n.Add(1), 10)
}

// XIDSequencer yields globally unique, time-sortable 20 byte tokens that
// survive node restarts without persisted state.
type XIDSequencer struct{}

func (XIDSequencer) Next() string {
	return xid.New().String()
}
