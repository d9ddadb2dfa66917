// Package link binds the packet codec to a transport for one named host.
//
// Outbound: Application -> packet.Encode -> Transport.Send.
// Inbound: Transport.Recv -> packet.Decode -> address filter -> Application.
// The link does not retry, acknowledge or route.
package link

import (
	"context"
	"errors"
	"fmt"

	"github.com/danmuck/lorawords/internal/observability"
	"github.com/danmuck/lorawords/internal/packet"
	"github.com/danmuck/lorawords/internal/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrBroadcastHost = errors.New("link: host may not be the broadcast address")

// Link is one host's view of the radio channel.
type Link struct {
	host      string
	transport transport.Transport
	seq       Sequencer
	logger    zerolog.Logger
	promisc   bool
}

type Option func(*Link)

func WithSequencer(s Sequencer) Option {
	return func(l *Link) { l.seq = s }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(l *Link) { l.logger = logger }
}

// WithPromiscuous delivers every decodable packet regardless of destination.
func WithPromiscuous(on bool) Option {
	return func(l *Link) { l.promisc = on }
}

func New(host string, t transport.Transport, opts ...Option) (*Link, error) {
	if err := packet.ValidateHost(host); err != nil {
		return nil, fmt.Errorf("link host: %w", err)
	}
	if host == packet.Broadcast {
		return nil, ErrBroadcastHost
	}
	l := &Link{
		host:      host,
		transport: t,
		seq:       &CounterSequencer{},
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With().Str("host", host).Logger()
	return l, nil
}

func (l *Link) Host() string {
	return l.host
}

// Send stamps a packet from this host with the next sequence token and sends it.
func (l *Link) Send(ctx context.Context, to, payload string) (packet.Packet, error) {
	p := packet.Packet{
		From:     l.host,
		To:       to,
		Payload:  payload,
		Sequence: l.seq.Next(),
	}
	if err := l.SendPacket(ctx, p); err != nil {
		return packet.Packet{}, err
	}
	return p, nil
}

// SendPacket encodes p as given and sends it.
func (l *Link) SendPacket(ctx context.Context, p packet.Packet) error {
	wire, err := packet.Encode(p)
	if err != nil {
		observability.RecordPacket(l.host, observability.DirectionTx, observability.ResultInvalid, 0)
		return err
	}
	if err := l.transport.Send(ctx, wire); err != nil {
		observability.RecordPacket(l.host, observability.DirectionTx, observability.ResultError, 0)
		return fmt.Errorf("link send: %w", err)
	}
	observability.RecordPacket(l.host, observability.DirectionTx, observability.ResultOK, len(wire))
	l.logger.Debug().Str("to", p.To).Str("seq", p.Sequence).Int("bytes", len(wire)).Msg("packet sent")
	return nil
}

// Recv returns the next packet addressed to this host or broadcast. Frames
// that fail to decode and packets for other hosts are dropped.
func (l *Link) Recv(ctx context.Context) (packet.Packet, error) {
	for {
		wire, err := l.transport.Recv(ctx)
		if err != nil {
			return packet.Packet{}, fmt.Errorf("link recv: %w", err)
		}
		p, err := packet.Decode(wire)
		if err != nil {
			result := observability.ResultInvalid
			if errors.Is(err, packet.ErrMalformedPacket) {
				result = observability.ResultMalformed
			}
			observability.RecordPacket(l.host, observability.DirectionRx, result, 0)
			l.logger.Debug().Err(err).Int("bytes", len(wire)).Msg("dropped undecodable frame")
			continue
		}
		if !l.Accepts(p) {
			observability.RecordPacket(l.host, observability.DirectionRx, observability.ResultFiltered, 0)
			l.logger.Trace().Str("from", p.From).Str("to", p.To).Msg("ignored packet for other host")
			continue
		}
		observability.RecordPacket(l.host, observability.DirectionRx, observability.ResultOK, len(wire))
		return p, nil
	}
}

// Accepts reports whether p is for this host.
func (l *Link) Accepts(p packet.Packet) bool {
	return l.promisc || p.To == l.host || packet.IsBroadcast(p)
}

func (l *Link) Close() error {
	return l.transport.Close()
}
