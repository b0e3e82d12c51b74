package bandio

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec compresses bands with Zstandard, favoring compression ratio over speed — suited to
// the rare oversized band (large file bands, verbose attribute bands) worth spending the extra
// cycles on. Backed exclusively by github.com/klauspost/compress/zstd (pure Go, no cgo): the
// teacher's own cgo zstd backend sits behind a build tag that never matches in any real build
// of that repo either, so there is no working cgo path being given up here.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(false))
		if err != nil {
			panic(fmt.Sprintf("bandio: failed to create zstd decoder: %v", err))
		}

		return d
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderCRC(false))
		if err != nil {
			panic(fmt.Sprintf("bandio: failed to create zstd encoder: %v", err))
		}

		return e
	},
}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("bandio: zstd decompress: %w", err)
	}

	return out, nil
}
