package transport

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBusDeliversToEveryOtherMember(t *testing.T) {
	bus := NewBus()
	a := bus.Attach(4)
	b := bus.Attach(4)
	c := bus.Attach(4)
	defer a.Close()
	defer b.Close()
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := a.Send(ctx, []byte("a|ALL|hi||")); err != nil {
		t.Fatalf("send: %v", err)
	}
	for _, m := range []*Memory{b, c} {
		got, err := m.Recv(ctx)
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		if string(got) != "a|ALL|hi||" {
			t.Fatalf("unexpected bytes: %q", got)
		}
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if _, err := a.Recv(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected sender not to hear itself, got %v", err)
	}
}

func TestBusCopiesPayload(t *testing.T) {
	bus := NewBus()
	a := bus.Attach(1)
	b := bus.Attach(1)

	buf := []byte("x|y|||")
	if err := a.Send(context.Background(), buf); err != nil {
		t.Fatalf("send: %v", err)
	}
	buf[0] = 'z'
	got, err := b.Recv(context.Background())
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if string(got) != "x|y|||" {
		t.Fatalf("expected delivered copy, got %q", got)
	}
}

func TestMemoryClose(t *testing.T) {
	bus := NewBus()
	a := bus.Attach(1)
	b := bus.Attach(1)

	errc := make(chan error, 1)
	go func() {
		_, err := b.Recv(context.Background())
		errc <- err
	}()

	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	select {
	case err := <-errc:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("expected ErrClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("recv did not unblock on close")
	}
	if bus.Len() != 1 {
		t.Fatalf("expected 1 member after close, got %d", bus.Len())
	}
	if err := b.Send(context.Background(), []byte("x")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on send, got %v", err)
	}
	if err := a.Send(context.Background(), []byte("x")); err != nil {
		t.Fatalf("send with no listeners: %v", err)
	}
}
