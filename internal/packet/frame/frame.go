// Package frame splits a byte stream into packet-sized frames for UART links.
//
// Each frame is one encoded packet followed by '\n'. A trailing '\r' is
// dropped so modems that emit CRLF line endings read cleanly.
package frame

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/danmuck/lorawords/internal/packet"
)

const Terminator byte = '\n'

var (
	ErrEmptyFrame        = errors.New("frame: empty frame")
	ErrFrameTooLarge     = errors.New("frame: frame too large")
	ErrTerminatorInFrame = errors.New("frame: terminator inside frame")
)

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxFrameBytes int
}

func DefaultLimits() Limits {
	return Limits{MaxFrameBytes: packet.MaxWireSize}
}

// ReadFrame returns the next frame from r without its terminator.
//
// An oversized frame is consumed through its terminator before
// ErrFrameTooLarge is returned, so the next call starts on a frame boundary.
// io.EOF is returned only when r ends cleanly between frames; a partial frame
// at end of stream yields io.ErrUnexpectedEOF.
func ReadFrame(r *bufio.Reader, limits Limits) ([]byte, error) {
	var buf []byte
	oversized := false
	for {
		chunk, err := r.ReadSlice(Terminator)
		if !oversized {
			buf = append(buf, chunk...)
			if len(bytes.TrimSuffix(buf, []byte{Terminator})) > limits.MaxFrameBytes+1 {
				oversized = true
				buf = nil
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 && !oversized {
				return nil, io.EOF
			}
			return nil, io.ErrUnexpectedEOF
		default:
			return nil, err
		}

		if oversized {
			return nil, ErrFrameTooLarge
		}
		out := bytes.TrimSuffix(buf[:len(buf)-1], []byte{'\r'})
		if len(out) > limits.MaxFrameBytes {
			return nil, ErrFrameTooLarge
		}
		if len(out) == 0 {
			return nil, ErrEmptyFrame
		}
		return out, nil
	}
}

// WriteFrame writes b followed by the terminator in a single write.
func WriteFrame(w io.Writer, b []byte, limits Limits) error {
	if len(b) == 0 {
		return ErrEmptyFrame
	}
	if len(b) > limits.MaxFrameBytes {
		return ErrFrameTooLarge
	}
	if bytes.IndexByte(b, Terminator) >= 0 {
		return ErrTerminatorInFrame
	}
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, b...)
	buf = append(buf, Terminator)
	_, err := w.Write(buf)
	return err
}
