// Package packet owns the lorawords wire contract.
//
// A packet is four delimiter-terminated ASCII fields:
//
//	<from>|<to>|<payload>|<sequence>|
//
// Fields are variable length with fixed upper bounds; the delimiter is the
// only reserved byte and there is no escaping, so a field carrying '|' is
// rejected at encode time rather than corrupted on the wire.
//
// Ownership boundary:
// - field limits and the broadcast literal
// - encode/decode and the validation shared by both directions
// - the error taxonomy consumed by link and transport layers
//
// Stream framing (newline terminated frames for UART links) lives in
// packet/frame and never enters the codec.
package packet
