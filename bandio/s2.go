package bandio

import "github.com/klauspost/compress/s2"

// S2Codec compresses bands with S2, a Snappy-compatible format tuned for throughput rather than
// ratio — suited for the common case of moderately-sized bands where compression must not
// become the bottleneck of packing a large JAR.
type S2Codec struct{}

var _ Codec = S2Codec{}

func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
