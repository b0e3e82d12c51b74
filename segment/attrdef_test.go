package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pack200/packer/classfile"
)

func TestDefineAssignsFromContextFreeList(t *testing.T) {
	r := NewAttrDefRegistry()

	def, hi := r.Define(classfile.AttributePrototype{Name: "Foo", Context: classfile.ContextClass, Layout: "RCH"})
	require.False(t, hi)
	require.Equal(t, 25, def.Index)

	def2, hi2 := r.Define(classfile.AttributePrototype{Name: "Bar", Context: classfile.ContextClass, Layout: "H"})
	require.False(t, hi2)
	require.Equal(t, 26, def2.Index)
}

func TestDefineOpensHiRangeWhenFreeListExhausted(t *testing.T) {
	r := NewAttrDefRegistry()

	var last AttrDef
	var hi bool
	for i := 0; i < 7; i++ { // class free list has exactly 7 slots (25..31)
		last, hi = r.Define(classfile.AttributePrototype{Name: "A", Context: classfile.ContextClass, Layout: "H"})
	}
	require.False(t, hi)
	require.Equal(t, 31, last.Index)

	overflow, hiOpened := r.Define(classfile.AttributePrototype{Name: "B", Context: classfile.ContextClass, Layout: "H"})
	require.True(t, hiOpened)
	require.Equal(t, 32, overflow.Index)
}

func TestHeaderByteEncoding(t *testing.T) {
	def := AttrDef{Context: classfile.ContextField, Index: 18}
	require.Equal(t, int64(classfile.ContextField)|19<<2, HeaderByte(def))
}

func TestCountAcrossContexts(t *testing.T) {
	r := NewAttrDefRegistry()
	r.Define(classfile.AttributePrototype{Name: "A", Context: classfile.ContextClass})
	r.Define(classfile.AttributePrototype{Name: "B", Context: classfile.ContextMethod})

	require.Equal(t, 2, r.Count())
}
