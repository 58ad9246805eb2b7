// ABOUTME: WAV decoder
// ABOUTME: Reads a RIFF/WAVE header and extracts 16-bit PCM samples
package decode

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/go-audio/wav"
)

// WAV decodes a whole WAV file into 16-bit PCM. Only 16-bit sample data
// is accepted; anything else is a format error rather than a silent
// requantization.
func WAV(r io.ReadSeeker) (*PCM, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, errors.Mark(errors.New("not a valid wav file"), ErrFormat)
	}
	if d.BitDepth != 16 {
		return nil, errors.Mark(errors.Newf("unsupported bit depth: %d", d.BitDepth), ErrFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read wav samples"), ErrFormat)
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}

	return &PCM{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		Samples:    samples,
	}, nil
}
