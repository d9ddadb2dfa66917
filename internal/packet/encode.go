package packet

// Encode validates p and returns its wire form.
func Encode(p Packet) ([]byte, error) {
	return Append(make([]byte, 0, p.WireLen()), p)
}

// Append validates p and appends its wire form to dst. On error dst is
// returned unchanged.
func Append(dst []byte, p Packet) ([]byte, error) {
	if err := Validate(p); err != nil {
		return dst, err
	}
	for _, f := range fieldOrder {
		dst = append(dst, p.field(f)...)
		dst = append(dst, Div)
	}
	return dst, nil
}
