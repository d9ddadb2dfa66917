package transport

import (
	"context"
	"sync"
)

const defaultInboxSize = 64

// Bus is an in-process shared medium. Every attached endpoint hears every
// send except its own, like stations on one radio channel.
type Bus struct {
	mu      sync.RWMutex
	members map[*Memory]struct{}
}

func NewBus() *Bus {
	return &Bus{members: make(map[*Memory]struct{})}
}

// Attach adds an endpoint whose inbox holds up to inbox packets. Packets that
// arrive while the inbox is full are dropped.
func (b *Bus) Attach(inbox int) *Memory {
	if inbox <= 0 {
		inbox = defaultInboxSize
	}
	m := &Memory{
		bus:   b,
		inbox: make(chan []byte, inbox),
		done:  make(chan struct{}),
	}
	b.mu.Lock()
	b.members[m] = struct{}{}
	b.mu.Unlock()
	return m
}

// Len returns the number of attached endpoints.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.members)
}

func (b *Bus) detach(m *Memory) {
	b.mu.Lock()
	delete(b.members, m)
	b.mu.Unlock()
}

func (b *Bus) deliver(from *Memory, pkt []byte) {
	b.mu.RLock()
	peers := make([]*Memory, 0, len(b.members))
	for m := range b.members {
		if m != from {
			peers = append(peers, m)
		}
	}
	b.mu.RUnlock()

	for _, p := range peers {
		buf := make([]byte, len(pkt))
		copy(buf, pkt)
		select {
		case p.inbox <- buf:
		default:
		}
	}
}

// Memory is one endpoint on a Bus.
type Memory struct {
	bus   *Bus
	inbox chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func (m *Memory) Send(ctx context.Context, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-m.done:
		return ErrClosed
	default:
	}
	m.bus.deliver(m, b)
	return nil
}

func (m *Memory) Recv(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		return nil, ErrClosed
	case b := <-m.inbox:
		return b, nil
	}
}

func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		m.bus.detach(m)
		close(m.done)
	})
	return nil
}
