package payload

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/txwal/internal/conv"
)

// Codec identifies the compression applied to a payload body.
type Codec uint8

const (
	// CodecNone stores the body verbatim.
	CodecNone Codec = 0
	// CodecLZ4 stores an LZ4 block (fast, modest ratio).
	CodecLZ4 Codec = 1
	// CodecZstd stores a zstd frame (slower, better ratio).
	CodecZstd Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// MaxDecodedSize bounds the uncompressed length Decode accepts.
const MaxDecodedSize = 64 << 20

var (
	// ErrUnknownCodec is returned for a tag outside the known codecs.
	ErrUnknownCodec = errors.New("payload: unknown codec")
	// ErrCorrupt is returned when a framed payload cannot be decoded.
	ErrCorrupt = errors.New("payload: corrupt frame")
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(MaxDecodedSize))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Encode frames data with the given codec.
func Encode(c Codec, data []byte) ([]byte, error) {
	return AppendEncode(nil, c, data)
}

// AppendEncode appends the framed form of data to dst.
func AppendEncode(dst []byte, c Codec, data []byte) ([]byte, error) {
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("payload: %d bytes exceeds limit of %d", len(data), MaxDecodedSize)
	}

	var body []byte
	switch c {
	case CodecNone:
	case CodecLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("payload: lz4: %w", err)
		}
		body = buf[:n]
	case CodecZstd:
		enc := getZstdEncoder()
		body = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}

	// Keep compressed bodies only when they save at least 10%.
	if c != CodecNone && (len(body) == 0 || len(body)*10 > len(data)*9) {
		c, body = CodecNone, nil
	}
	if c == CodecNone {
		body = data
	}

	dst = append(dst, byte(c))
	dst = binary.AppendUvarint(dst, uint64(len(data)))
	return append(dst, body...), nil
}

// Decode reverses Encode and returns the original bytes along with the
// codec that was actually used. The result never aliases framed.
func Decode(framed []byte) ([]byte, Codec, error) {
	if len(framed) == 0 {
		return nil, 0, fmt.Errorf("%w: empty", ErrCorrupt)
	}
	c := Codec(framed[0])
	rawSize, n := binary.Uvarint(framed[1:])
	if n <= 0 {
		return nil, c, fmt.Errorf("%w: bad length prefix", ErrCorrupt)
	}
	size, err := conv.Uint64ToInt(rawSize)
	if err != nil || size > MaxDecodedSize {
		return nil, c, fmt.Errorf("%w: length %d exceeds limit", ErrCorrupt, rawSize)
	}
	body := framed[1+n:]

	switch c {
	case CodecNone:
		if len(body) != size {
			return nil, c, fmt.Errorf("%w: body is %d bytes, want %d", ErrCorrupt, len(body), size)
		}
		out := make([]byte, size)
		copy(out, body)
		return out, c, nil

	case CodecLZ4:
		out := make([]byte, size)
		m, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, c, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if m != size {
			return nil, c, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, c, nil

	case CodecZstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, c, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(out) != size {
			return nil, c, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, c, nil

	default:
		return nil, c, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}
}
