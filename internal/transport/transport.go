// Package transport moves encoded packets between lorawords endpoints.
//
// A Transport carries exactly one packet's bytes per Send or Recv. It knows
// nothing about the packet format; link-layer framing, radio access and any
// buffering belong here, validation belongs to package packet.
package transport

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("transport: closed")

// Transport abstracts packet I/O over a shared radio channel.
type Transport interface {
	// Send transmits one encoded packet.
	Send(ctx context.Context, b []byte) error

	// Recv blocks until one encoded packet arrives, ctx ends, or the
	// transport is closed.
	Recv(ctx context.Context) ([]byte, error)

	// Close releases the underlying link. Pending Recv calls return ErrClosed.
	Close() error
}
