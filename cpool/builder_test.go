package cpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddUtf8Deduplicates(t *testing.T) {
	b := NewBuilder()

	a := b.AddUtf8("java/lang/Object")
	c := b.AddUtf8("java/lang/Object")

	require.Same(t, a, c)
	require.Equal(t, -1, a.Index())
}

func TestAddClassRegistersUtf8(t *testing.T) {
	b := NewBuilder()

	c := b.AddClass("com/example/Foo")
	require.Equal(t, "com/example/Foo", c.Name.Value)

	c2 := b.AddClass("com/example/Foo")
	require.Same(t, c, c2)
}

func TestAddSignatureRegistersReferencedClasses(t *testing.T) {
	b := NewBuilder()

	sig := b.AddSignature("(L;)V", []string{"java/lang/String"})
	require.Len(t, sig.Classes, 1)
	require.Equal(t, "java/lang/String", sig.Classes[0].Name.Value)

	sig2 := b.AddSignature("(L;)V", []string{"java/lang/String"})
	require.Same(t, sig, sig2)
}

func TestFinalizeAssignsContiguousIndices(t *testing.T) {
	b := NewBuilder()

	u1 := b.AddUtf8("zzz")
	u2 := b.AddUtf8("aaa")
	i1 := b.AddInteger(42)

	b.Finalize()

	require.True(t, b.Finalized())
	// "aaa" sorts before "zzz" lexicographically.
	require.Less(t, u2.Index(), u1.Index())
	require.GreaterOrEqual(t, i1.Index(), 0)

	seen := map[int]bool{u1.Index(): true, u2.Index(): true, i1.Index(): true}
	require.Len(t, seen, 3, "indices must be distinct")
}

func TestFinalizeIsIdempotent(t *testing.T) {
	b := NewBuilder()
	u := b.AddUtf8("x")
	b.Finalize()
	idx := u.Index()
	b.Finalize()
	require.Equal(t, idx, u.Index())
}

func TestFieldMethodDedupByIdentity(t *testing.T) {
	b := NewBuilder()

	class := b.AddClass("com/example/Foo")
	sig := b.AddSignature("I", nil)
	nat := b.AddNameAndType("count", sig)

	f1 := b.AddField(class, nat)
	f2 := b.AddField(class, nat)
	require.Same(t, f1, f2)

	m1 := b.AddMethod(class, nat)
	require.NotEqual(t, any(f1), any(m1))
}

func TestIsInnerClass(t *testing.T) {
	b := NewBuilder()

	outer := b.AddClass("com/example/Foo")
	inner := b.AddClass("com/example/Foo$Bar")

	require.False(t, IsInnerClass(outer))
	require.True(t, IsInnerClass(inner))
}
