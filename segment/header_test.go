package segment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesBeginsWithMagic(t *testing.T) {
	h := &Header{}
	b, err := h.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xCA, 0xFE, 0xD0, 0x0D}, b[:4])
	require.Equal(t, byte(MinVersion), b[4])
	require.Equal(t, byte(MajVersion), b[5])
}

func TestComputeOptionsSetsFileHeadersWhenFilesPresent(t *testing.T) {
	h := &Header{FileCount: 1}
	h.ComputeOptions(false, false, false, false, false, false, false, false, false)

	require.NotZero(t, h.Options&OptFileHeaders)
}

func TestComputeOptionsSetsCPNumbersWhenNumericEntriesPresent(t *testing.T) {
	h := &Header{}
	h.CP.Long = 2
	h.ComputeOptions(false, false, false, false, false, false, false, false, false)

	require.NotZero(t, h.Options&OptCPNumbers)
}

func TestComputeOptionsLeavesUnsetBitsClear(t *testing.T) {
	h := &Header{}
	h.ComputeOptions(false, false, false, false, false, false, false, false, false)

	require.Zero(t, h.Options)
}

func TestValidateFlagsRejectsUnknownBits(t *testing.T) {
	h := &Header{Options: 1 << 31}
	require.Error(t, h.ValidateFlags())
}

func TestBytesOmitsFileCountWhenNoFiles(t *testing.T) {
	withFiles := &Header{FileCount: 3}
	withFiles.ComputeOptions(false, false, false, false, false, false, false, false, false)
	bWith, err := withFiles.Bytes()
	require.NoError(t, err)

	without := &Header{}
	bWithout, err := without.Bytes()
	require.NoError(t, err)

	require.Greater(t, len(bWith), len(bWithout))
}
