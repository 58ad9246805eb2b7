// ABOUTME: Playback controller owning the buffer, decode bridge, and output stream
// ABOUTME: Implements play, pause/resume toggle, and circular next/previous
package player

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/wavdeck/wavdeck/internal/audio"
	"github.com/wavdeck/wavdeck/internal/engine"
)

// TrackLoader decodes a track and replaces the sample buffer contents.
// Satisfied by decode.Bridge; substituted with a fake in tests.
type TrackLoader interface {
	LoadTrack(path string) error
}

// Player coordinates track transitions between the decode bridge, the
// shared sample buffer, and the output engine. All methods run on the
// control thread; the buffer is the only state shared with the engine's
// real-time callback.
type Player struct {
	playlist []string
	index    int

	cfg    audio.Config
	buf    *audio.Buffer
	loader TrackLoader
	engine engine.Engine

	stream engine.Stream
	state  State
}

// New creates a stopped player over a non-empty playlist.
func New(playlist []string, cfg audio.Config, buf *audio.Buffer, loader TrackLoader, eng engine.Engine) *Player {
	return &Player{
		playlist: playlist,
		cfg:      cfg,
		buf:      buf,
		loader:   loader,
		engine:   eng,
		state:    StateStopped,
	}
}

// Play starts hardware delivery for the current track. The track is only
// decoded when the buffer is empty, so resuming after a pause picks up
// from the preserved position instead of re-decoding. Any failure leaves
// the state untouched.
func (p *Player) Play() error {
	track := p.playlist[p.index]

	if p.buf.Len() == 0 {
		if err := p.loader.LoadTrack(track); err != nil {
			return err
		}
	}

	stream, err := p.engine.Open(p.cfg, p.buf.Fill)
	if err != nil {
		return errors.Wrapf(err, "play %s", track)
	}

	p.stream = stream
	p.state = StatePlaying
	zlog.Info().Str("track", track).Msg("playing file")
	return nil
}

// Toggle pauses a playing stream, preserving the buffer position, or
// resumes (via Play) when paused or stopped.
func (p *Player) Toggle() {
	if p.state == StatePlaying {
		p.stopStream()
		p.state = StatePaused
		zlog.Info().Uint64("sample", p.buf.Consumed()).Msg("paused")
		return
	}

	zlog.Info().Uint64("sample", p.buf.Consumed()).Msg("resuming")
	if err := p.Play(); err != nil {
		zlog.Error().Err(err).Msg("failed to resume playback")
	}
}

// Next stops any live stream, advances to the following track (wrapping
// past the end), and restarts playback from its first sample.
func (p *Player) Next() {
	p.stopStream()
	p.index = (p.index + 1) % len(p.playlist)
	p.forcePlay()
}

// Previous stops any live stream, steps back one track (wrapping to the
// last on underflow), and restarts playback from its first sample.
func (p *Player) Previous() {
	p.stopStream()
	if p.index == 0 {
		p.index = len(p.playlist) - 1
	} else {
		p.index--
	}
	p.forcePlay()
}

// forcePlay discards the buffered position and plays the current track
// from the start. The stream is already stopped, so clearing the buffer
// cannot race the callback. On failure the player is left stopped rather
// than claiming a playing state it never reached.
func (p *Player) forcePlay() {
	p.buf.Clear()

	if err := p.Play(); err != nil {
		p.state = StateStopped
		zlog.Error().Err(err).Msg("failed to play file")
	}
}

// stopStream synchronously detaches the live stream, if any. The buffer
// is left untouched so a resume continues where the hardware stopped.
func (p *Player) stopStream() {
	if p.stream == nil {
		return
	}
	if err := p.stream.Stop(); err != nil {
		zlog.Warn().Err(err).Msg("failed to stop output stream")
	}
	p.stream = nil
}

// State returns the current playback state.
func (p *Player) State() State {
	return p.state
}

// TrackIndex returns the current position in the playlist.
func (p *Player) TrackIndex() int {
	return p.index
}
