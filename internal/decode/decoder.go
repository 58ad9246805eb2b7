// ABOUTME: Decode entry point and error taxonomy
// ABOUTME: Dispatches file paths to per-format decoders by extension
package decode

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Decode failures. ErrFormat covers anything that prevents parsing a
// file; the mismatch errors reject files whose format disagrees with the
// negotiated device configuration before any buffer mutation happens.
var (
	ErrFormat             = errors.New("unparseable audio file")
	ErrSampleRateMismatch = errors.New("sample rate mismatch")
	ErrChannelMismatch    = errors.New("channel count mismatch")
)

// PCM is a fully decoded track: raw signed 16-bit samples plus the format
// read from the file's header.
type PCM struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// File decodes the track at path, choosing a decoder by extension.
func File(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".wav":
		return WAV(f)
	case ".mp3":
		return MP3(f)
	default:
		return nil, errors.Mark(errors.Newf("unsupported extension: %s", path), ErrFormat)
	}
}
