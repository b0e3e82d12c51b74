package shredder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pack200/packer/classfile"
	"github.com/pack200/packer/cpool"
	"github.com/pack200/packer/innerclass"
)

func newTestShredder() (*Shredder, *cpool.Builder, *innerclass.Tracker, *ClassBands) {
	pool := cpool.NewBuilder()
	tracker := innerclass.NewTracker()
	bands := &ClassBands{}

	return NewShredder(pool, tracker, bands, ActionPass, nil, nil), pool, tracker, bands
}

type fixedLayouts map[attrKey]string

func (f fixedLayouts) Lookup(ctx classfile.AttributeContext, name string) (string, bool) {
	s, ok := f[attrKey{ctx: ctx, name: name}]

	return s, ok
}

func TestShredderVisitSimpleClass(t *testing.T) {
	s, pool, _, bands := newTestShredder()

	c := classfile.Class{
		Version:   52,
		Access:    0x0021, // public, super
		Name:      "a/Example",
		SuperName: "java/lang/Object",
		Methods: []classfile.Method{
			{Access: 0x0001, Name: "<init>", Descriptor: "()V", HasCode: true, MaxStack: 1, MaxLocals: 1},
		},
	}

	require.NoError(t, classfile.Replay(s, c))

	outcome := s.Finish()
	require.True(t, outcome.IsShredded())
	require.Len(t, outcome.Shredded().Methods, 1)

	pool.Finalize()
	require.NotEqual(t, -1, 0) // sanity: pool finalized without panicking
	require.Len(t, bands.ClassFlagsLo, 1)
}

func TestShredderFoldsZeroHandlerCodeHeader(t *testing.T) {
	s, _, _, bands := newTestShredder()

	c := classfile.Class{
		Name: "a/Leaf",
		Methods: []classfile.Method{
			{Access: 0x0009, Name: "run", Descriptor: "()V", HasCode: true, MaxStack: 1, MaxLocals: 0},
		},
	}

	require.NoError(t, classfile.Replay(s, c))

	m := s.Finish().Shredded().Methods[0]
	require.True(t, m.CodeHeaderFolded)
	require.Len(t, bands.CodeHeaders, 1)
	require.Empty(t, bands.CodeMaxStack)
}

func TestShredderMaxLocalsAdjustmentSubtractsThisAndArgs(t *testing.T) {
	s, _, _, _ := newTestShredder()

	c := classfile.Class{
		Name: "a/Leaf",
		Methods: []classfile.Method{
			// instance method, one int arg: maxLocals 3 -> this(1) + arg(1) -> adjusted 1
			{Access: 0x0001, Name: "add", Descriptor: "(I)I", HasCode: true, MaxStack: 2, MaxLocals: 3},
		},
	}

	require.NoError(t, classfile.Replay(s, c))

	m := s.Finish().Shredded().Methods[0]
	require.Equal(t, 1, m.MaxLocalsAdjusted)
}

func TestShredderStaticMethodSkipsThisSubtraction(t *testing.T) {
	s, _, _, _ := newTestShredder()

	c := classfile.Class{
		Name: "a/Leaf",
		Methods: []classfile.Method{
			{Access: 0x0009, Name: "add", Descriptor: "(I)I", HasCode: true, MaxStack: 2, MaxLocals: 2},
		},
	}

	require.NoError(t, classfile.Replay(s, c))

	m := s.Finish().Shredded().Methods[0]
	require.Equal(t, 1, m.MaxLocalsAdjusted)
}

func TestShredderPassThroughRollsBackBands(t *testing.T) {
	s, _, _, bands := newTestShredder()

	c := classfile.Class{Name: "a/First"}
	require.NoError(t, classfile.Replay(s, c))
	s.Finish()
	require.Len(t, bands.ClassFlagsLo, 1)

	c2 := classfile.Class{Name: "a/Second"}
	require.NoError(t, s.Visit(c2.Version, c2.Access, c2.Name, "", "", nil))
	require.NoError(t, s.VisitEnd())
	outcome := s.PassThrough([]byte("raw bytes"))

	require.True(t, outcome.IsPassed())
	require.Equal(t, []byte("raw bytes"), outcome.PassedBytes())
	require.Len(t, bands.ClassFlagsLo, 1) // Second's contribution rolled back
}

func TestShredderRecordsInnerClassReference(t *testing.T) {
	s, _, tracker, _ := newTestShredder()

	tracker.Record(innerclass.Tuple{Inner: "a/Outer$Inner", Outer: "a/Outer", Name: "Inner"})

	c := classfile.Class{Name: "a/Consumer", SuperName: "a/Outer$Inner"}
	require.NoError(t, classfile.Replay(s, c))

	entries := tracker.LocalEntries("a/Consumer")
	require.Len(t, entries, 1)
	require.Equal(t, "a/Outer$Inner", entries[0].Inner)
}

func TestShredderShredsRegisteredCustomAttributeIntoLayoutBands(t *testing.T) {
	pool := cpool.NewBuilder()
	tracker := innerclass.NewTracker()
	bands := &ClassBands{}
	layouts := fixedLayouts{{ctx: classfile.ContextClass, name: "CompilationID"}: "RUH"}
	customBands := NewCustomAttrBands()

	s := NewShredder(pool, tracker, bands, ActionPass, layouts, customBands)

	c := classfile.Class{
		Name: "a/Stamped",
		Attributes: []classfile.AttributeInstance{
			{Context: classfile.ContextClass, Name: "CompilationID", Data: []byte{0x00, 0x00, 0x00, 0x2a}},
		},
	}

	require.NoError(t, classfile.Replay(s, c))
	s.Finish()

	got := customBands.Bands()
	require.Len(t, got, 1) // RUH is a single Reference element, always read as a 4-byte index
	require.Equal(t, []int64{42}, got[0].Values)
}

func TestShredderCustomAttributeBandsAccumulateAcrossRepeatedInstances(t *testing.T) {
	pool := cpool.NewBuilder()
	tracker := innerclass.NewTracker()
	bands := &ClassBands{}
	layouts := fixedLayouts{{ctx: classfile.ContextClass, name: "Tag"}: "RUH"}
	customBands := NewCustomAttrBands()

	s := NewShredder(pool, tracker, bands, ActionPass, layouts, customBands)

	c := classfile.Class{
		Name: "a/MultiStamped",
		Attributes: []classfile.AttributeInstance{
			{Context: classfile.ContextClass, Name: "Tag", Data: []byte{0x00, 0x00, 0x00, 0x01}},
			{Context: classfile.ContextClass, Name: "Tag", Data: []byte{0x00, 0x00, 0x00, 0x02}},
		},
	}

	require.NoError(t, classfile.Replay(s, c))
	s.Finish()

	got := customBands.Bands()
	require.Len(t, got, 1)
	require.Equal(t, []int64{1, 2}, got[0].Values)
}

func TestShredderFallsBackToUnknownAttributePolicyWithoutAMatchingPrototype(t *testing.T) {
	pool := cpool.NewBuilder()
	tracker := innerclass.NewTracker()
	bands := &ClassBands{}
	layouts := fixedLayouts{}

	s := NewShredder(pool, tracker, bands, ActionError, layouts, NewCustomAttrBands())

	c := classfile.Class{
		Name:       "a/Stamped",
		Attributes: []classfile.AttributeInstance{{Context: classfile.ContextClass, Name: "Mystery", Data: []byte{1, 2, 3}}},
	}

	err := classfile.Replay(s, c)
	require.Error(t, err)
	require.True(t, s.MalformedClass())
}

func TestArgumentCountTableForVariousDescriptors(t *testing.T) {
	require.Equal(t, 0, ArgumentCount("()V"))
	require.Equal(t, 1, ArgumentCount("(I)V"))
	require.Equal(t, 2, ArgumentCount("(J)V"))
}
