// ABOUTME: Tests for backend-shared engine helpers
// ABOUTME: Verifies float32 -> 16-bit PCM conversion and clamping
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSamples(t *testing.T) {
	tests := []struct {
		name     string
		in       float32
		expected int16
	}{
		{name: "silence", in: 0, expected: 0},
		{name: "full scale", in: 1, expected: 32767},
		{name: "negative full scale", in: -1, expected: -32767},
		{name: "half scale", in: 0.5, expected: 16383},
		{name: "clamped above", in: 1.5, expected: 32767},
		{name: "clamped below", in: -2, expected: -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 2)
			encodeSamples(dst, []float32{tt.in})

			got := int16(uint16(dst[0]) | uint16(dst[1])<<8)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeSamplesInterleaved(t *testing.T) {
	dst := make([]byte, 8)
	encodeSamples(dst, []float32{0, 1, -1, 0})

	assert.Equal(t, byte(0), dst[0])
	assert.Equal(t, byte(0), dst[1])
	assert.Equal(t, byte(0xFF), dst[2])
	assert.Equal(t, byte(0x7F), dst[3])
}
