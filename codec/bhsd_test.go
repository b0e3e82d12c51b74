package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBHSDRoundTripUnsigned(t *testing.T) {
	c, err := NewBHSD(5, 64, 0, 0)
	require.NoError(t, err)

	values := []int64{0, 1, 63, 64, 1000, 123456, 4294967295}

	encoded, err := c.EncodeAll(values, 0)
	require.NoError(t, err)

	decoded, err := c.DecodeAll(encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestBHSDRoundTripSigned(t *testing.T) {
	c, err := NewBHSD(5, 64, 1, 0)
	require.NoError(t, err)

	values := []int64{0, -1, 1, -100, 100, -999999, 999999}

	encoded, err := c.EncodeAll(values, 0)
	require.NoError(t, err)

	decoded, err := c.DecodeAll(encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestBHSDRoundTripDelta(t *testing.T) {
	c, err := NewBHSD(5, 64, 0, 1)
	require.NoError(t, err)

	values := []int64{10, 12, 12, 15, 20, 20, 25}

	encoded, err := c.EncodeAll(values, 0)
	require.NoError(t, err)

	decoded, err := c.DecodeAll(encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestBHSDByteCodecIsCompact(t *testing.T) {
	values := []int64{0, 1, 2, 254, 255}

	encoded, err := ByteCodec.EncodeAll(values, 0)
	require.NoError(t, err)
	require.Len(t, encoded, len(values), "BYTE1-style codec should be exactly one byte per value")
}

func TestBHSDRejectsInvalidParams(t *testing.T) {
	_, err := NewBHSD(0, 256, 0, 0)
	require.Error(t, err)

	_, err = NewBHSD(1, 0, 0, 0)
	require.Error(t, err)

	_, err = NewBHSD(1, 256, 4, 0)
	require.Error(t, err)

	_, err = NewBHSD(1, 256, 0, 2)
	require.Error(t, err)
}

func TestBHSDRejectsSOutsideZeroToTwo(t *testing.T) {
	_, err := NewBHSD(5, 4, 3, 1)
	require.Error(t, err)

	_, err = NewBHSD(5, 4, 2, 1)
	require.NoError(t, err)
}

func TestBHSDRejectsStructuralInvariantViolations(t *testing.T) {
	_, err := NewBHSD(1, 128, 0, 0) // B==1 requires H==256
	require.Error(t, err)

	_, err = NewBHSD(5, 256, 0, 0) // H==256 is invalid with B==5
	require.Error(t, err)

	_, err = NewBHSD(1, 256, 0, 0)
	require.NoError(t, err)
}

func TestBHSDDecodeTruncated(t *testing.T) {
	c, err := NewBHSD(5, 64, 0, 0)
	require.NoError(t, err)

	_, err = c.DecodeAll([]byte{}, 1, 0)
	require.Error(t, err)
}

func TestCanonicalByIndex(t *testing.T) {
	c, err := CanonicalByIndex(1)
	require.NoError(t, err)
	require.NotNil(t, c)

	_, err = CanonicalByIndex(0)
	require.Error(t, err)

	_, err = CanonicalByIndex(116)
	require.Error(t, err)
}

func TestCanonicalIndexOfRoundTrips(t *testing.T) {
	idx, ok := CanonicalIndexOf(Unsigned5.B, Unsigned5.H, Unsigned5.S, Unsigned5.D)
	require.True(t, ok)

	c, err := CanonicalByIndex(idx)
	require.NoError(t, err)
	require.Equal(t, Unsigned5.String(), c.String())
}

func TestRunSplitsAtK(t *testing.T) {
	a := ByteCodec
	b := Unsigned5

	run, err := NewRun(3, a, b)
	require.NoError(t, err)

	values := []int64{1, 2, 3, 1000, 2000}

	encoded, err := run.EncodeAll(values, 0)
	require.NoError(t, err)

	decoded, err := run.DecodeAll(encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestPopulationFavoursMostCommonValue(t *testing.T) {
	pop := NewPopulation(ByteCodec, Unsigned5)

	values := []int64{1, 1, 1, 1, 1, 42, 1, 1, 999, 1}

	encoded, err := pop.EncodeAll(values, 0)
	require.NoError(t, err)

	decoded, err := pop.DecodeAll(encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestMeasureComputesBandStatistics(t *testing.T) {
	bd := Measure([]int64{10, 20, 15, 15, 30})

	require.Equal(t, int64(10), bd.Smallest)
	require.Equal(t, int64(30), bd.Largest)
	require.Len(t, bd.Deltas, 4)
	require.InDelta(t, 0.5, bd.AscendingFraction, 1e-9)
}

func TestMeasureHandlesEmptyAndSingleton(t *testing.T) {
	require.Equal(t, BandData{Values: nil}, Measure(nil))

	bd := Measure([]int64{5})
	require.Equal(t, int64(5), bd.Smallest)
	require.Equal(t, int64(5), bd.Largest)
	require.Empty(t, bd.Deltas)
}
