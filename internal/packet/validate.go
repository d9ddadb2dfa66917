package packet

import "strings"

var fieldOrder = [...]Field{FieldFrom, FieldTo, FieldPayload, FieldSequence}

// Validate checks p against the field limits in wire order, then checks every
// field for the delimiter. The first failure wins.
func Validate(p Packet) error {
	if err := validateLengths(p); err != nil {
		return err
	}
	for _, f := range fieldOrder {
		if strings.IndexByte(p.field(f), Div) >= 0 {
			return &FieldError{Field: f, Err: ErrInvalidCharacter}
		}
	}
	return nil
}

// ValidateHost applies the from/to identifier rules to a single host value.
func ValidateHost(host string) error {
	if err := checkField(FieldFrom, host); err != nil {
		return err
	}
	if strings.IndexByte(host, Div) >= 0 {
		return &FieldError{Field: FieldFrom, Err: ErrInvalidCharacter}
	}
	return nil
}

func validateLengths(p Packet) error {
	for _, f := range fieldOrder {
		if err := checkField(f, p.field(f)); err != nil {
			return err
		}
	}
	return nil
}

func checkField(f Field, v string) error {
	switch f {
	case FieldTo:
		if v == Broadcast {
			return nil
		}
		fallthrough
	case FieldFrom:
		if v == "" {
			return &FieldError{Field: f, Err: ErrFieldEmpty, Max: f.Max()}
		}
	}
	if len(v) > f.Max() {
		return &FieldError{Field: f, Err: ErrFieldTooLong, Len: len(v), Max: f.Max()}
	}
	return nil
}
