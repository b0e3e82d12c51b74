package segment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHeaderReflectsFileAndPoolCounts(t *testing.T) {
	r := NewRegistry()
	r.Pool.AddUtf8("hello")
	r.Pool.AddLong(42)
	r.Files.AddPassedClass("a/B", []byte{1, 2, 3}, 0)
	r.ClassCount = 1

	h := r.BuildHeader(52)

	require.Equal(t, 1, h.FileCount)
	require.NotZero(t, h.Options&OptFileHeaders)
	require.NotZero(t, h.Options&OptCPNumbers)
	require.GreaterOrEqual(t, h.CP.Utf8, 1)
	require.Equal(t, 1, h.CP.Long)
}

func TestBuildHeaderWithoutNumericCPLeavesCPNumbersUnset(t *testing.T) {
	r := NewRegistry()
	r.Pool.AddUtf8("only a string")

	h := r.BuildHeader(52)
	require.Zero(t, h.Options&OptCPNumbers)
}

func TestBuildHeaderFinalizesPool(t *testing.T) {
	r := NewRegistry()
	r.Pool.AddClass("a/B")

	r.BuildHeader(52)
	require.True(t, r.Pool.Finalized())
}
