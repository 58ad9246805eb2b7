// ABOUTME: Decode bridge between track files and the shared sample buffer
// ABOUTME: Validates format against the device configuration before loading
package decode

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/wavdeck/wavdeck/internal/audio"
)

// Bridge loads decoded tracks into the sample buffer, rejecting files
// whose format disagrees with the negotiated output configuration.
type Bridge struct {
	cfg audio.Config
	buf *audio.Buffer
}

// NewBridge creates a bridge bound to the negotiated configuration and
// the player's sample buffer.
func NewBridge(cfg audio.Config, buf *audio.Buffer) *Bridge {
	return &Bridge{cfg: cfg, buf: buf}
}

// LoadTrack decodes the file at path and replaces the buffer contents
// with its normalized samples. All validation happens before the buffer
// is touched: a mismatched or unparseable file leaves prior contents and
// the consumed counter intact.
func (b *Bridge) LoadTrack(path string) error {
	zlog.Info().Str("track", path).Msg("loading file")

	pcm, err := File(path)
	if err != nil {
		return err
	}

	if pcm.SampleRate != b.cfg.SampleRate {
		return errors.Mark(
			errors.Newf("sample rate mismatch: file has %d, expected %d", pcm.SampleRate, b.cfg.SampleRate),
			ErrSampleRateMismatch)
	}
	if pcm.Channels != b.cfg.Channels {
		return errors.Mark(
			errors.Newf("channel count mismatch: file has %d, expected %d", pcm.Channels, b.cfg.Channels),
			ErrChannelMismatch)
	}

	b.buf.Clear()
	b.buf.Load(audio.NormalizeAll(pcm.Samples))

	zlog.Info().Str("track", path).Int("samples", len(pcm.Samples)).Msg("loaded samples")
	return nil
}
