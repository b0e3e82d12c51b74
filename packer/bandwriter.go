package packer

import (
	"bytes"

	"github.com/pack200/packer/bandio"
	"github.com/pack200/packer/codec"
	"github.com/pack200/packer/format"
)

// writeBand runs values through a Selector and appends to dst: a specifier encoded with
// defaultCodec (0 when the default codec is kept; otherwise the chosen codec's canonical-table
// index plus defaultCodec's L = 256-H when defaultCodec is unsigned, or -1 minus that index when
// it is signed), a one-byte format.CompressionType marker, the payload length (UNSIGNED5), and
// the payload itself. A zero-length band contributes nothing at all — a band of length 0 emits
// zero bytes and skips codec selection entirely.
//
// When cc is non-nil and the encoded payload clears bandio.CompressionThreshold, the payload is
// run through cc (the supplemented band_compression option; see SPEC_FULL.md) and the marker
// names the compressor; otherwise the marker is format.CompressionNone.
func writeBand(dst *bytes.Buffer, sel *codec.Selector, values []int64, defaultCodec *codec.BHSD, cc *bandCompressor) error {
	if len(values) == 0 {
		return nil
	}

	choice, err := sel.Select(values, defaultCodec, false)
	if err != nil {
		return err
	}

	specifier := int64(0)
	if !choice.IsDefault {
		if defaultCodec.S == 0 {
			specifier = int64(choice.Specifier) + int64(256-defaultCodec.H)
		} else {
			specifier = -1 - int64(choice.Specifier)
		}
	}

	if err := defaultCodec.EncodeValue(dst, specifier, 0); err != nil {
		return err
	}

	payload, marker, err := cc.apply(choice.Encoded)
	if err != nil {
		return err
	}

	if err := codec.ByteCodec.EncodeValue(dst, int64(marker), 0); err != nil {
		return err
	}
	if err := codec.Unsigned5.EncodeValue(dst, int64(len(payload)), 0); err != nil {
		return err
	}
	dst.Write(payload)

	return nil
}

// bandCompressor wraps the configured bandio.Codec (nil when band_compression is "none"). It is
// a thin seam so writeBand's signature stays stable regardless of whether compression is active.
type bandCompressor struct {
	codec bandio.Codec
	kind  format.CompressionType
}

// newBandCompressor returns a bandCompressor for kind, or nil when kind is
// format.CompressionNone (the default: skip compression entirely; writeBand still writes a
// format.CompressionNone marker byte for every band).
func newBandCompressor(kind format.CompressionType) (*bandCompressor, error) {
	if kind == format.CompressionNone {
		return nil, nil
	}

	c, err := bandio.Get(kind)
	if err != nil {
		return nil, err
	}

	return &bandCompressor{codec: c, kind: kind}, nil
}

// apply compresses data when bc is configured and data clears bandio.CompressionThreshold,
// returning the bytes to write and the format.CompressionType marker byte a reader would need to
// reverse it (format.CompressionNone when left uncompressed).
func (bc *bandCompressor) apply(data []byte) ([]byte, format.CompressionType, error) {
	if bc == nil || len(data) < bandio.CompressionThreshold {
		return data, format.CompressionNone, nil
	}

	compressed, err := bc.codec.Compress(data)
	if err != nil {
		return nil, format.CompressionNone, err
	}

	if len(compressed) >= len(data) {
		return data, format.CompressionNone, nil
	}

	return compressed, bc.kind, nil
}
