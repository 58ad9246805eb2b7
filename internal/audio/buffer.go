// ABOUTME: Thread-safe sample buffer shared with the real-time audio callback
// ABOUTME: FIFO of normalized float32 samples with a consumed-sample counter
package audio

import "sync"

// Buffer holds a track's decoded samples between the control thread and
// the output device's real-time callback. The control thread loads and
// clears it; the callback drains it front to back. Both sides synchronize
// on a single mutex, and the callback-side critical section is bounded to
// one period's worth of queue operations with no allocation.
type Buffer struct {
	mu       sync.Mutex
	samples  []float32
	head     int
	consumed uint64
}

// NewBuffer creates an empty sample buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Clear empties the buffer and resets the consumed counter. Callers must
// ensure no live output stream is draining the buffer, or rely on the
// internal lock serializing against the callback.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.samples = nil
	b.head = 0
	b.consumed = 0
}

// Load appends a decoded track's samples in order. Track changes call
// Clear first so the new track replaces the old one's contents.
func (b *Buffer) Load(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.samples = append(b.samples, samples...)
}

// Pop removes and returns the earliest queued sample, or 0.0 (silence)
// when the buffer is exhausted. The consumed counter advances either way.
// Never blocks, never fails, never allocates.
func (b *Buffer) Pop() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.popLocked()
}

// Fill writes one callback period's worth of samples into out, front to
// back, zero-filling past exhaustion. A single lock acquisition covers the
// whole period so the real-time thread takes the mutex once per callback.
func (b *Buffer) Fill(out []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range out {
		out[i] = b.popLocked()
	}
}

func (b *Buffer) popLocked() float32 {
	b.consumed++
	if b.head >= len(b.samples) {
		return 0
	}
	s := b.samples[b.head]
	b.head++
	return s
}

// Len returns the number of samples still queued.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.samples) - b.head
}

// Consumed returns the number of samples delivered since the last Clear,
// including silence substituted on underrun.
func (b *Buffer) Consumed() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.consumed
}
