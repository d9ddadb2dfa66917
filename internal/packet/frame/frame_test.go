package frame

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/danmuck/lorawords/internal/packet"
)

func TestWriteReadRoundTrip(t *testing.T) {
	wire, err := packet.Encode(packet.Packet{From: "node1", To: "node2", Payload: "hello", Sequence: "1"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, wire, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if err := WriteFrame(&buf, wire, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	r := bufio.NewReader(&buf)
	for i := 0; i < 2; i++ {
		got, err := ReadFrame(r, DefaultLimits())
		if err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if !bytes.Equal(got, wire) {
			t.Fatalf("expected %q, got %q", wire, got)
		}
	}
	if _, err := ReadFrame(r, DefaultLimits()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReadFrameStripsCarriageReturn(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("a|b|c|d|\r\n"))
	got, err := ReadFrame(r, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if string(got) != "a|b|c|d|" {
		t.Fatalf("unexpected frame: %q", got)
	}
}

func TestReadFrameTooLargeResynchronises(t *testing.T) {
	limits := Limits{MaxFrameBytes: 8}
	in := strings.Repeat("x", 40) + "\n" + "a|b|||\n"
	r := bufio.NewReaderSize(strings.NewReader(in), 16)

	if _, err := ReadFrame(r, limits); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	got, err := ReadFrame(r, limits)
	if err != nil {
		t.Fatalf("read after oversize: %v", err)
	}
	if string(got) != "a|b|||" {
		t.Fatalf("unexpected frame: %q", got)
	}
}

func TestReadFrameExactLimit(t *testing.T) {
	limits := Limits{MaxFrameBytes: 4}
	r := bufio.NewReader(strings.NewReader("abcd\nabcde\n"))
	if got, err := ReadFrame(r, limits); err != nil || string(got) != "abcd" {
		t.Fatalf("expected abcd, got %q (%v)", got, err)
	}
	if _, err := ReadFrame(r, limits); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestReadFrameEmptyAndPartial(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\r\npartial"))
	if _, err := ReadFrame(r, DefaultLimits()); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
	if _, err := ReadFrame(r, DefaultLimits()); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestWriteFrameRejects(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, nil, DefaultLimits()); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
	if err := WriteFrame(&buf, []byte("a\nb"), DefaultLimits()); !errors.Is(err, ErrTerminatorInFrame) {
		t.Fatalf("expected ErrTerminatorInFrame, got %v", err)
	}
	big := bytes.Repeat([]byte("x"), packet.MaxWireSize+1)
	if err := WriteFrame(&buf, big, DefaultLimits()); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %d bytes", buf.Len())
	}
}
