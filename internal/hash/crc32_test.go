package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_ReferenceVectors(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFFFF), Checksum(nil))
	assert.Equal(t, uint32(0xFFFFFFFF), Checksum([]byte{}))
	assert.Equal(t, uint32(0xCBF43926), Checksum([]byte("123456789")))
	// "a" is a common second vector for CRC-32/IEEE.
	assert.Equal(t, uint32(0xE8B7BE43), Checksum([]byte("a")))
}

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	assert.Equal(t, Checksum(data), Checksum(data))
	assert.True(t, Verify(data, Checksum(data)))
}

func TestChecksum_SingleBitFlip(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i * 7)
	}
	want := Checksum(data)

	for i := 0; i < len(data)*8; i++ {
		flipped := append([]byte(nil), data...)
		flipped[i/8] ^= 1 << (i % 8)
		assert.NotEqual(t, want, Checksum(flipped), "bit %d", i)
	}
}
