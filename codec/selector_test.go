package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectorSkipsSmallBands(t *testing.T) {
	sel := NewSelector(5)

	values := []int64{1, 2, 3}
	selection, err := sel.Select(values, Unsigned5, false)
	require.NoError(t, err)
	require.True(t, selection.IsDefault)
}

func TestSelectorPicksByteCodecForSmallRange(t *testing.T) {
	sel := NewSelector(9)

	values := make([]int64, 200)
	for i := range values {
		values[i] = int64(i % 200)
	}

	selection, err := sel.Select(values, Unsigned5, false)
	require.NoError(t, err)
	require.Equal(t, ByteCodec, selection.Codec)

	decoded, err := selection.Codec.DecodeAll(selection.Encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestSelectorPrefersDeltaForAscendingRun(t *testing.T) {
	sel := NewSelector(9)

	values := make([]int64, 300)
	for i := range values {
		values[i] = int64(i * 2)
	}

	selection, err := sel.Select(values, Unsigned5, false)
	require.NoError(t, err)
	chosen, ok := selection.Codec.(*BHSD)
	require.True(t, ok)
	require.True(t, chosen.Delta())

	decoded, err := selection.Codec.DecodeAll(selection.Encoded, len(values), 0)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
	require.LessOrEqual(t, len(selection.Encoded), 300*5, "delta encoding of a linear ramp should never be worse than the raw codec")
}

func TestNewSelectorClampsEffort(t *testing.T) {
	require.Equal(t, 1, NewSelector(0).Effort)
	require.Equal(t, 9, NewSelector(20).Effort)
}

func TestCandidateCoversRejectsOutOfRange(t *testing.T) {
	bd := Measure([]int64{-1000000, 0, 1000000})
	require.False(t, candidateCovers(ByteCodec, bd))
}

func TestSelectorObserveFitsASizeModelAfterEnoughSamples(t *testing.T) {
	sel := NewSelector(9)

	require.Nil(t, sel.estimator)

	for i := 1; i <= refitInterval; i++ {
		sel.observe(100*i, 50*i)
	}

	require.NotNil(t, sel.estimator, "estimator should be fit once refitInterval samples accumulate")
}

func TestSelectorObserveIgnoresZeroLengthBands(t *testing.T) {
	sel := NewSelector(9)

	sel.observe(0, 10)
	require.Empty(t, sel.lengths)
}

func TestPredictedSavingsNegligibleSkipsSearchAtLowEffort(t *testing.T) {
	sel := NewSelector(2)

	// Train the model on bands whose best achievable cost is effectively the same as the
	// default's raw byte width, so it learns there is nothing to gain from searching.
	for i := 1; i <= refitInterval*2; i++ {
		length := 50 * i
		sel.observe(length, length) // 1 byte/value: no better than ByteCodec already applied by default
	}

	require.NotNil(t, sel.estimator)
	require.True(t, sel.predictedSavingsNegligible(500, 500, 2))
}

func TestPredictedSavingsNegligibleNeverSkipsBeforeAModelExists(t *testing.T) {
	sel := NewSelector(1)
	require.False(t, sel.predictedSavingsNegligible(500, 10000, 2))
}
