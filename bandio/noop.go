package bandio

// NoOpCodec bypasses compression entirely. It is the default band_compression setting: the
// BHSD/Run/Population codecs already do the real compression work, so plain bands pay no extra
// transport-layer overhead.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
