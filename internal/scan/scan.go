// Package scan runs the barcode capture loop. The camera and the decoding
// library are external collaborators behind the FrameSource and Decoder
// ports; the loop itself only sequences frames, cooldowns and teardown.
package scan

import (
	"context"
	"errors"
	"io"
	"log"
	"time"
)

// FrameSource delivers captured frames. Next blocks until a frame is
// available, the source is exhausted (io.EOF) or ctx is done. Close releases
// the underlying device.
type FrameSource interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// Decoder extracts a product code from a frame, reporting ok=false when the
// frame holds no readable code.
type Decoder interface {
	Decode(frame []byte) (code string, ok bool)
}

// DefaultCooldown pauses decoding after a hit so one physical barcode does
// not register repeatedly across consecutive frames.
const DefaultCooldown = 1500 * time.Millisecond

type Scanner struct {
	source   FrameSource
	decoder  Decoder
	cooldown time.Duration
	onCode   func(code string)
}

// New builds a scanner that invokes onCode for every decoded hit. A
// non-positive cooldown falls back to DefaultCooldown.
func New(source FrameSource, decoder Decoder, cooldown time.Duration, onCode func(code string)) *Scanner {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Scanner{
		source:   source,
		decoder:  decoder,
		cooldown: cooldown,
		onCode:   onCode,
	}
}

// Run consumes frames until ctx is cancelled or the source is exhausted,
// then closes the source. Frames arriving during a cooldown window are read
// but not decoded. Run returns nil on EOF or cancellation.
func (s *Scanner) Run(ctx context.Context) error {
	defer func() {
		if err := s.source.Close(); err != nil {
			log.Printf("[scan] close frame source: %v", err)
		}
	}()

	pausedUntil := time.Time{}
	for {
		frame, err := s.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if time.Now().Before(pausedUntil) {
			continue
		}

		code, ok := s.decoder.Decode(frame)
		if !ok {
			continue
		}

		s.onCode(code)
		pausedUntil = time.Now().Add(s.cooldown)
	}
}
