//go:build !cgo

// ABOUTME: Oto output backend for builds without cgo
// ABOUTME: Pull-based playback through an io.Reader draining the fill callback
package engine

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ebitengine/oto/v3"

	"github.com/wavdeck/wavdeck/internal/audio"
)

// defaultReadSamples bounds how many samples one reader pull converts,
// keeping each callback-side drain small.
const defaultReadSamples = 2048

// Oto plays through the oto library. The consumer contract is the same
// as the portaudio backend's: oto's audio goroutine pulls on demand and
// each pull drains the sample buffer via the registered FillFunc. Oto
// exposes no device query surface and allows one context per process, so
// the negotiated configuration is a fixed CD-quality default.
type Oto struct {
	frames   int
	errs     chan error
	ctx      *oto.Context
	rate     int
	channels int
}

// New creates the oto-backed engine. The context itself is created on
// first Open, once the configuration is known.
func New(framesPerBuffer int) (Engine, error) {
	return &Oto{
		frames: framesPerBuffer,
		errs:   make(chan error, 8),
	}, nil
}

// Negotiate returns the fixed fallback configuration.
func (e *Oto) Negotiate() (audio.Config, error) {
	return audio.Config{SampleRate: 44100, Channels: 2}, nil
}

// Open starts a player pulling converted samples from fill.
func (e *Oto) Open(cfg audio.Config, fill FillFunc) (Stream, error) {
	if e.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "create oto context"), ErrDevice)
		}
		<-ready
		e.ctx = ctx
		e.rate = cfg.SampleRate
		e.channels = cfg.Channels
	} else if e.rate != cfg.SampleRate || e.channels != cfg.Channels {
		return nil, errors.Mark(
			errors.Newf("oto context is fixed at %d Hz / %d channels", e.rate, e.channels),
			ErrDevice)
	}

	reads := e.frames
	if reads <= 0 {
		reads = defaultReadSamples
	}
	player := e.ctx.NewPlayer(&pullReader{
		fill:    fill,
		scratch: make([]float32, reads),
	})
	player.Play()

	return &otoStream{player: player}, nil
}

// Errors returns the asynchronous fault channel.
func (e *Oto) Errors() <-chan error {
	return e.errs
}

// Close suspends the oto context. Oto keeps it alive for the process.
func (e *Oto) Close() error {
	if e.ctx != nil {
		return e.ctx.Suspend()
	}
	return nil
}

// pullReader adapts the FillFunc contract to oto's io.Reader pull model.
type pullReader struct {
	fill    FillFunc
	scratch []float32
}

func (r *pullReader) Read(p []byte) (int, error) {
	n := len(p) / 2
	if n == 0 {
		return 0, nil
	}
	if n > len(r.scratch) {
		n = len(r.scratch)
	}

	r.fill(r.scratch[:n])
	encodeSamples(p, r.scratch[:n])
	return n * 2, nil
}

type otoStream struct {
	mu      sync.Mutex
	player  *oto.Player
	stopped bool
}

// Stop closes the player; oto stops pulling from the reader once the
// player is closed.
func (s *otoStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	return s.player.Close()
}
