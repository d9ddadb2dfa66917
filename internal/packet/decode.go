package packet

import "bytes"

// Decode parses exactly one packet from b.
//
// A delimiter that was embedded in a sender's field cannot be told apart
// from a field boundary here; Encode refusing such fields is the only guard.
func Decode(b []byte) (Packet, error) {
	parts := bytes.Split(b, []byte(DivStr))
	if len(parts) != wireParts {
		return Packet{}, &MalformedError{Parts: len(parts)}
	}
	if tail := len(parts[wireParts-1]); tail != 0 {
		return Packet{}, &MalformedError{Parts: len(parts), Trailing: tail}
	}

	p := Packet{
		From:     string(parts[FieldFrom]),
		To:       string(parts[FieldTo]),
		Payload:  string(parts[FieldPayload]),
		Sequence: string(parts[FieldSequence]),
	}
	if err := validateLengths(p); err != nil {
		return Packet{}, err
	}
	return p, nil
}

// DecodeString is Decode for string input.
func DecodeString(s string) (Packet, error) {
	return Decode([]byte(s))
}
