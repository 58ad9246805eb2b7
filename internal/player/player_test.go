// ABOUTME: Tests for the playback controller state machine
// ABOUTME: Drives the hardware callback through a fake engine
package player

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavdeck/wavdeck/internal/audio"
	"github.com/wavdeck/wavdeck/internal/engine"
)

// fakeLoader mirrors the decode bridge contract: validate, then
// clear-and-load the buffer with the track's samples.
type fakeLoader struct {
	buf    *audio.Buffer
	tracks map[string][]float32
	fails  map[string]error
	loads  int
}

func (l *fakeLoader) LoadTrack(path string) error {
	if err := l.fails[path]; err != nil {
		return err
	}
	l.loads++
	l.buf.Clear()
	l.buf.Load(l.tracks[path])
	return nil
}

type fakeStream struct {
	stopped int
}

func (s *fakeStream) Stop() error {
	s.stopped++
	return nil
}

type fakeEngine struct {
	fill    engine.FillFunc
	streams []*fakeStream
	openErr error
	errs    chan error
}

func (e *fakeEngine) Negotiate() (audio.Config, error) {
	return audio.Config{SampleRate: 44100, Channels: 1}, nil
}

func (e *fakeEngine) Open(_ audio.Config, fill engine.FillFunc) (engine.Stream, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.fill = fill
	s := &fakeStream{}
	e.streams = append(e.streams, s)
	return s, nil
}

func (e *fakeEngine) Errors() <-chan error { return e.errs }
func (e *fakeEngine) Close() error         { return nil }

// consume runs the hardware callback for n samples.
func (e *fakeEngine) consume(n int) []float32 {
	out := make([]float32, n)
	e.fill(out)
	return out
}

func newTestPlayer(tracks map[string][]float32, playlist ...string) (*Player, *fakeEngine, *fakeLoader) {
	buf := audio.NewBuffer()
	loader := &fakeLoader{buf: buf, tracks: tracks, fails: map[string]error{}}
	eng := &fakeEngine{}
	cfg := audio.Config{SampleRate: 44100, Channels: 1}
	return New(playlist, cfg, buf, loader, eng), eng, loader
}

func TestNextWrapsAroundPlaylist(t *testing.T) {
	tracks := map[string][]float32{"a": {1}, "b": {2}, "c": {3}}
	p, _, _ := newTestPlayer(tracks, "a", "b", "c")

	for i := 0; i < 3; i++ {
		p.Next()
	}
	assert.Equal(t, 0, p.TrackIndex())

	for i := 0; i < 3; i++ {
		p.Previous()
	}
	assert.Equal(t, 0, p.TrackIndex())
}

func TestPreviousWrapsToLast(t *testing.T) {
	tracks := map[string][]float32{"a": {1}, "b": {2}, "c": {3}}
	p, _, _ := newTestPlayer(tracks, "a", "b", "c")

	p.Previous()
	assert.Equal(t, 2, p.TrackIndex())
}

func TestPlayDecodesOnlyWhenBufferEmpty(t *testing.T) {
	tracks := map[string][]float32{"a": {0.1, 0.2, 0.3}}
	p, _, loader := newTestPlayer(tracks, "a")

	require.NoError(t, p.Play())
	assert.Equal(t, 1, loader.loads)
	assert.Equal(t, StatePlaying, p.State())

	p.Toggle() // pause
	p.Toggle() // resume; buffer still holds samples, no re-decode
	assert.Equal(t, 1, loader.loads)
}

func TestPausePreservesPosition(t *testing.T) {
	tracks := map[string][]float32{"a": {1, 2, 3, 4, 5}}
	p, eng, _ := newTestPlayer(tracks, "a")
	require.NoError(t, p.Play())

	assert.Equal(t, []float32{1, 2}, eng.consume(2))

	p.Toggle()
	assert.Equal(t, StatePaused, p.State())
	assert.Equal(t, 1, eng.streams[0].stopped)

	p.Toggle()
	assert.Equal(t, StatePlaying, p.State())

	// Consumption continues at sample index 2: nothing re-delivered,
	// nothing skipped.
	assert.Equal(t, []float32{3, 4, 5}, eng.consume(3))
}

func TestTrackSwitchResetsPosition(t *testing.T) {
	tracks := map[string][]float32{"a": {1, 2, 3}, "b": {7, 8}}
	p, eng, _ := newTestPlayer(tracks, "a", "b")
	require.NoError(t, p.Play())

	eng.consume(2)

	p.Next()
	assert.Equal(t, 1, eng.streams[0].stopped)
	assert.Equal(t, StatePlaying, p.State())

	// New track starts at its first sample regardless of prior position.
	assert.Equal(t, []float32{7, 8}, eng.consume(2))
}

func TestPlayFailureLeavesStateStopped(t *testing.T) {
	tracks := map[string][]float32{"a": {1}}
	p, _, loader := newTestPlayer(tracks, "a")
	loader.fails["a"] = errors.New("decode failed")

	assert.Error(t, p.Play())
	assert.Equal(t, StateStopped, p.State())
}

func TestResumeFailureKeepsPausedState(t *testing.T) {
	tracks := map[string][]float32{"a": {1, 2, 3}}
	p, eng, _ := newTestPlayer(tracks, "a")
	require.NoError(t, p.Play())
	p.Toggle()
	require.Equal(t, StatePaused, p.State())

	eng.openErr = errors.New("device gone")
	p.Toggle()
	assert.Equal(t, StatePaused, p.State())
}

func TestNextFailureStops(t *testing.T) {
	tracks := map[string][]float32{"a": {1}, "b": {2}}
	p, _, loader := newTestPlayer(tracks, "a", "b")
	require.NoError(t, p.Play())
	loader.fails["b"] = errors.New("decode failed")

	p.Next()
	assert.Equal(t, StateStopped, p.State())
	assert.Equal(t, 1, p.TrackIndex())
}

func TestEndToEndScenario(t *testing.T) {
	tracks := map[string][]float32{
		"a": {0.1, 0.2, 0.3},
		"b": {0.8, 0.9},
	}
	p, eng, _ := newTestPlayer(tracks, "a", "b")

	// Play delivers A's samples then silence on underrun.
	require.NoError(t, p.Play())
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0}, eng.consume(4))

	// Next clears and delivers B then silence.
	p.Next()
	assert.Equal(t, []float32{0.8, 0.9, 0}, eng.consume(3))

	// Previous from B wraps to A and restarts from sample 0.
	p.Previous()
	assert.Equal(t, 0, p.TrackIndex())
	assert.Equal(t, []float32{0.1, 0.2}, eng.consume(2))
}

func TestStopStreamIsIdempotentAcrossOperations(t *testing.T) {
	tracks := map[string][]float32{"a": {1}, "b": {2}}
	p, eng, _ := newTestPlayer(tracks, "a", "b")
	require.NoError(t, p.Play())

	p.Toggle() // pause stops the stream
	p.Next()   // no live stream; must not double-stop

	require.Len(t, eng.streams, 2)
	assert.Equal(t, 1, eng.streams[0].stopped)
}
