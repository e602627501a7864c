package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x07, 0x34, 0x0734},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Combine(tt.high, tt.low), "Combine(%X, %X)", tt.high, tt.low)
	}
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		byte     uint8
		index    uint8
		expected bool
	}{
		{0b10101010, 0, false},
		{0b10101010, 1, true},
		{0b10101010, 2, false},
		{0b10101010, 7, true},
		{0b10101010, 8, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsSet(tt.index, tt.byte), "IsSet(%d, %08b)", tt.index, tt.byte)
	}
}

func TestSet(t *testing.T) {
	assert.Equal(t, uint8(0b00010000), Set(4, 0))
	assert.Equal(t, uint8(0x80), SetIf(true, 7, 0))
	assert.Equal(t, uint8(0x00), SetIf(false, 7, 0))
}

func TestLowHigh(t *testing.T) {
	assert.Equal(t, uint8(0xCD), Low(0xABCD))
	assert.Equal(t, uint8(0xAB), High(0xABCD))
}

func TestExtractBits(t *testing.T) {
	tests := []struct {
		name      string
		value     uint8
		high, low uint8
		expected  uint8
	}{
		{"duty field", 0b11010110, 7, 6, 0b11},
		{"middle", 0b11010110, 6, 4, 0b101},
		{"length index", 0b11111000, 7, 3, 0x1F},
		{"low nibble", 0x3A, 3, 0, 0x0A},
		{"single bit", 0x20, 5, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBits(tt.value, tt.high, tt.low))
		})
	}
}
