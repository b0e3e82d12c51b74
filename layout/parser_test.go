package layout

import (
	"testing"

	"github.com/pack200/packer/codec"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleIntegrals(t *testing.T) {
	l, _, err := Parse("BHI")
	require.NoError(t, err)
	require.Len(t, l.Elements, 3)
	require.Equal(t, byte('B'), l.Elements[0].UintType)
	require.Equal(t, byte('H'), l.Elements[1].UintType)
	require.Equal(t, byte('I'), l.Elements[2].UintType)
}

func TestParseReference(t *testing.T) {
	l, _, err := Parse("RCNRUH")
	require.NoError(t, err)
	require.Len(t, l.Elements, 2)

	ref := l.Elements[0]
	require.Equal(t, KindReference, ref.Kind)
	require.Equal(t, byte('R'), ref.RefKind)
	require.Equal(t, "C", ref.RefTypes)
	require.True(t, ref.Nullable)
}

func TestParseReplication(t *testing.T) {
	l, _, err := Parse("NH[RCHB]")
	require.NoError(t, err)
	require.Len(t, l.Elements, 1)

	rep := l.Elements[0]
	require.Equal(t, KindReplication, rep.Kind)
	require.Equal(t, byte('H'), rep.CountType)
	require.Len(t, rep.Body.Elements, 2)
}

func TestParseUnionWithDefault(t *testing.T) {
	l, _, err := Parse("TB(1)[RCH](2)[RUH]()[]")
	require.NoError(t, err)
	require.Len(t, l.Elements, 1)

	u := l.Elements[0]
	require.Equal(t, KindUnion, u.Kind)
	require.Len(t, u.Cases, 2)
	require.NotNil(t, u.Default)
	require.Equal(t, []int64{1}, u.Cases[0].Values)
}

func TestParseCallAndResolve(t *testing.T) {
	top, arena, err := Parse("B(0)")
	require.NoError(t, err)
	require.NoError(t, ResolveCalls(arena))

	call := top.Elements[1]
	require.Equal(t, KindCall, call.Kind)
	require.NotNil(t, call.Target)
	require.Same(t, arena.Callables()[0], call.Target)
}

func TestParseIntegralModifiers(t *testing.T) {
	l, _, err := Parse("SBFHPHPOBOHOSB")
	require.NoError(t, err)
	require.Len(t, l.Elements, 6)

	require.Equal(t, byte('S'), l.Elements[0].Modifier)
	require.Equal(t, byte('F'), l.Elements[1].Modifier)
	require.Equal(t, byte('P'), l.Elements[2].Modifier)
	require.Equal(t, byte('P'), l.Elements[3].Modifier)
	require.True(t, l.Elements[3].Signed)
	require.Equal(t, byte('O'), l.Elements[4].Modifier)
	require.Equal(t, byte('O'), l.Elements[5].Modifier)
	require.True(t, l.Elements[5].Signed)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, err := Parse("Z")
	require.Error(t, err)
}

func TestReaderExecutesReplicationAndReference(t *testing.T) {
	l, _, err := Parse("NH[BRCH]")
	require.NoError(t, err)

	// count=2, then for each: one byte + one 4-byte CP ref.
	data := []byte{
		0, 2, // count = 2
		10, 0, 0, 0, 100, // element 1: byte=10, ref=100
		20, 0, 0, 0, 200, // element 2: byte=20, ref=200
	}

	r := NewReader(data)
	require.NoError(t, r.Execute(l))

	rep := l.Elements[0]
	require.Equal(t, []int64{10, 20}, r.Band(rep.Body.Elements[0]))
	require.Equal(t, []int64{100, 200}, r.Band(rep.Body.Elements[1]))
}

func TestCodecForSelectsByModifier(t *testing.T) {
	l, _, err := Parse("BSBOBPB")
	require.NoError(t, err)

	require.Equal(t, codec.ByteCodec, CodecFor(l.Elements[0]))
	require.Equal(t, codec.Signed5, CodecFor(l.Elements[1]))
	require.Equal(t, codec.Branch5, CodecFor(l.Elements[2]))
	require.Equal(t, codec.BCI5, CodecFor(l.Elements[3]))
}
