package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/danmuck/lorawords/internal/packet/frame"
	"github.com/rs/zerolog"
)

// Stream carries newline framed packets over a byte stream such as a UART.
type Stream struct {
	rwc    io.ReadWriteCloser
	limits frame.Limits
	logger zerolog.Logger

	wmu sync.Mutex

	frames chan []byte
	done   chan struct{}

	closeOnce sync.Once
	errMu     sync.Mutex
	readErr   error
}

// NewStream starts reading frames from rwc. The Stream owns rwc from here on.
func NewStream(rwc io.ReadWriteCloser, limits frame.Limits, logger zerolog.Logger) *Stream {
	s := &Stream{
		rwc:    rwc,
		limits: limits,
		logger: logger,
		frames: make(chan []byte, defaultInboxSize),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *Stream) readLoop() {
	defer close(s.frames)
	r := bufio.NewReaderSize(s.rwc, s.limits.MaxFrameBytes+2)
	for {
		b, err := frame.ReadFrame(r, s.limits)
		switch {
		case err == nil:
		case errors.Is(err, frame.ErrEmptyFrame):
			continue
		case errors.Is(err, frame.ErrFrameTooLarge):
			s.logger.Debug().Int("max", s.limits.MaxFrameBytes).Msg("stream: dropped oversized frame")
			continue
		default:
			s.setReadErr(err)
			return
		}
		select {
		case s.frames <- b:
		case <-s.done:
			return
		}
	}
}

func (s *Stream) setReadErr(err error) {
	s.errMu.Lock()
	s.readErr = err
	s.errMu.Unlock()
}

func (s *Stream) Send(ctx context.Context, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return frame.WriteFrame(s.rwc, b, s.limits)
}

func (s *Stream) Recv(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrClosed
	case b, ok := <-s.frames:
		if ok {
			return b, nil
		}
	}

	select {
	case <-s.done:
		return nil, ErrClosed
	default:
	}
	s.errMu.Lock()
	err := s.readErr
	s.errMu.Unlock()
	if err == nil || errors.Is(err, io.EOF) {
		return nil, ErrClosed
	}
	return nil, err
}

func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.rwc.Close()
	})
	return err
}
