// ABOUTME: Audio type definitions and sample normalization
// ABOUTME: Defines the negotiated output configuration and int16 -> float32 conversion
package audio

// maxInt16 is the divisor used to normalize signed 16-bit samples.
// The most negative sample (-32768) maps slightly below -1.0.
const maxInt16 = 32767

// Config describes the negotiated output format. It is fixed for the
// process lifetime once the output device has been selected.
type Config struct {
	SampleRate int
	Channels   int
}

// Normalize converts a signed 16-bit sample to a float32 in [-1.0, 1.0].
func Normalize(sample int16) float32 {
	return float32(sample) / maxInt16
}

// NormalizeAll converts a decoded track's samples to normalized float32.
func NormalizeAll(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = Normalize(s)
	}
	return out
}
