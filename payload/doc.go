// Package payload frames and optionally compresses the opaque bytes a
// transaction manager stores in a log entry.
//
// A framed payload is
//
//	[codec tag: 1 byte][uncompressed length: uvarint][body]
//
// where body is the raw data for CodecNone, an LZ4 block for CodecLZ4 and a
// zstd frame for CodecZstd. Encode falls back to CodecNone when compression
// does not save at least a tenth of the input, so the tag of an encoded
// payload may differ from the requested codec.
//
// The log itself never looks inside a payload; this package is a
// convenience for producers and recovery readers.
package payload
