// Package hash provides the checksum primitive used to protect log records.
//
// # CRC-32 (IEEE)
//
// Every record carries a CRC-32 computed with the reflected IEEE 802.3
// polynomial (0xEDB88320), an initial register of 0xFFFFFFFF and a final
// one's complement. Stored checksums are compared bit-for-bit against a
// recomputation, so these parameters are part of the on-disk format and
// must never change.
//
// Reference vectors:
//
//	Checksum([]byte("123456789")) == 0xCBF43926
//	Checksum(nil)                 == 0xFFFFFFFF
//
// An empty input yields the untouched initial register. No record checksum
// is ever taken over an empty range, so this only matters to callers using
// the primitive directly.
//
// The implementation is github.com/klauspost/crc32, a drop-in replacement of
// hash/crc32 that uses SSE4.2/CLMUL or the ARM64 CRC instructions when the
// CPU has them.
package hash
