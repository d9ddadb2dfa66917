package packet

const (
	HostSize    = 8
	PayloadSize = 128
	SeqSize     = 64
	DivSize     = 1

	Div    byte = '|'
	DivStr      = "|"

	// Broadcast is the destination every listener accepts.
	Broadcast = "ALL"

	// MaxWireSize bounds Encode output; transports may size fixed buffers to it.
	MaxWireSize = HostSize + DivSize +
		HostSize + DivSize +
		PayloadSize + DivSize +
		SeqSize + DivSize

	// four fields plus the empty remainder after the final delimiter
	wireParts = 5
)

// Field identifies one of the four wire fields in order.
type Field int

const (
	FieldFrom Field = iota
	FieldTo
	FieldPayload
	FieldSequence
)

func (f Field) String() string {
	switch f {
	case FieldFrom:
		return "from"
	case FieldTo:
		return "to"
	case FieldPayload:
		return "payload"
	case FieldSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Index returns the 1-based wire position of the field.
func (f Field) Index() int {
	return int(f) + 1
}

// Max returns the byte bound for the field.
func (f Field) Max() int {
	switch f {
	case FieldFrom, FieldTo:
		return HostSize
	case FieldPayload:
		return PayloadSize
	case FieldSequence:
		return SeqSize
	default:
		return 0
	}
}

// Packet is one logical unit exchanged over the link. Treat it as a value.
type Packet struct {
	From     string
	To       string
	Payload  string
	Sequence string
}

// IsBroadcast reports whether p is addressed to every listener.
func IsBroadcast(p Packet) bool {
	return p.To == Broadcast
}

// IsBroadcast reports whether p is addressed to every listener.
func (p Packet) IsBroadcast() bool {
	return IsBroadcast(p)
}

// WireLen returns the encoded length of p without validating it.
func (p Packet) WireLen() int {
	return len(p.From) + len(p.To) + len(p.Payload) + len(p.Sequence) + 4*DivSize
}

func (p Packet) field(f Field) string {
	switch f {
	case FieldFrom:
		return p.From
	case FieldTo:
		return p.To
	case FieldPayload:
		return p.Payload
	case FieldSequence:
		return p.Sequence
	default:
		return ""
	}
}
