// ABOUTME: MP3 decoder
// ABOUTME: Decodes MP3 streams to 16-bit PCM via go-mp3
package decode

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/go-mp3"
)

// MP3 decodes a whole MP3 stream into 16-bit PCM. go-mp3 always yields
// two-channel 16-bit little-endian output at the stream's native rate.
func MP3(r io.Reader) (*PCM, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse mp3"), ErrFormat)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read mp3 samples"), ErrFormat)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return &PCM{
		SampleRate: d.SampleRate(),
		Channels:   2,
		Samples:    samples,
	}, nil
}
