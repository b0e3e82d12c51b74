package packer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pack200/packer/codec"
	"github.com/pack200/packer/format"
)

func TestWriteBandSkipsEmptyBand(t *testing.T) {
	var buf bytes.Buffer
	sel := codec.NewSelector(5)

	require.NoError(t, writeBand(&buf, sel, nil, codec.Unsigned5, nil))
	require.Zero(t, buf.Len())
}

func TestWriteBandEmitsDefaultSpecifierZero(t *testing.T) {
	var buf bytes.Buffer
	sel := codec.NewSelector(1) // low effort: always keeps the default codec

	require.NoError(t, writeBand(&buf, sel, []int64{1, 2, 3}, codec.Unsigned5, nil))
	require.NotZero(t, buf.Len())

	b, err := buf.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0), b, "specifier byte should be 0 for the default codec")
}

func TestBandCompressorLeavesSmallPayloadsUncompressed(t *testing.T) {
	cc, err := newBandCompressor(format.CompressionZstd)
	require.NoError(t, err)

	payload, marker, err := cc.apply([]byte("short"))
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, marker)
	require.Equal(t, []byte("short"), payload)
}

func TestBandCompressorCompressesLargeRepetitivePayloads(t *testing.T) {
	cc, err := newBandCompressor(format.CompressionZstd)
	require.NoError(t, err)

	data := bytes.Repeat([]byte{0x42}, 8192)
	payload, marker, err := cc.apply(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, marker)
	require.Less(t, len(payload), len(data))
}

func TestNewBandCompressorNilForNone(t *testing.T) {
	cc, err := newBandCompressor(format.CompressionNone)
	require.NoError(t, err)
	require.Nil(t, cc)
}
