// Package bandio provides the optional post-encoding compressors applied to a finished band's
// bytes under the supplemented `band_compression` option (see SPEC_FULL.md). This is distinct
// from the BHSD/Run/Population codecs in package codec: those operate on integers before they
// become bytes; bandio operates on the finished byte stream of a band, purely as a transport
// optimization, and is off by default.
package bandio

import (
	"fmt"

	"github.com/pack200/packer/format"
)

// CompressionThreshold is the minimum encoded band size, in bytes, before band compression is
// attempted. Smaller bands rarely benefit and the per-band header overhead would dominate.
const CompressionThreshold = 4096

// Compressor compresses a finished band's bytes.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor. Included for symmetry and for tooling that round-trips a
// packed segment's band-compression markers; the packer core itself never decodes (Non-goals).
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NoOpCodec{},
	format.CompressionZstd: ZstdCodec{},
	format.CompressionS2:   S2Codec{},
	format.CompressionLZ4:  LZ4Codec{},
}

// Get retrieves the built-in Codec for the given compression type.
func Get(t format.CompressionType) (Codec, error) {
	c, ok := builtinCodecs[t]
	if !ok {
		return nil, fmt.Errorf("bandio: unsupported compression type: %s", t)
	}

	return c, nil
}
