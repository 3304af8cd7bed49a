package hash

import (
	"github.com/klauspost/crc32"
)

// Size is the length in bytes of an encoded checksum.
const Size = 4

// emptyChecksum is the value reported for a zero-length input.
const emptyChecksum uint32 = 0xFFFFFFFF

// Checksum computes the CRC-32/IEEE checksum of data.
func Checksum(data []byte) uint32 {
	if len(data) == 0 {
		return emptyChecksum
	}
	return crc32.ChecksumIEEE(data)
}

// Verify reports whether data hashes to want.
func Verify(data []byte, want uint32) bool {
	return Checksum(data) == want
}
