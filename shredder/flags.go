package shredder

// Flag bits set on class_flags / method_flags / field_flags / code_flags, per the format's
// attribute-presence bit assignments (§4.6).
const (
	FlagSourceFileOrConstantValueOrCode uint64 = 1 << 17
	FlagEnclosingMethodOrExceptions     uint64 = 1 << 18
	FlagSignature                       uint64 = 1 << 19
	FlagDeprecated                      uint64 = 1 << 20
	FlagRuntimeVisibleAnnotations       uint64 = 1 << 21
	FlagRuntimeInvisibleAnnotations     uint64 = 1 << 22
	FlagInnerClassesLocal               uint64 = 1 << 23
	FlagRuntimeVisibleParameterAnnotations   uint64 = 1 << 23
	FlagRuntimeInvisibleParameterAnnotations uint64 = 1 << 24
	FlagNonDefaultMajorVersion          uint64 = 1 << 24
	FlagAnnotationDefault               uint64 = 1 << 25
)

// flagSet is a 64-bit bitset with the band-bookkeeping operations the shredder needs: set, test,
// and a snapshot/restore pair cheap enough to call once per class for the rollback protocol.
type flagSet struct {
	bits uint64
}

func (f *flagSet) set(bit uint64)      { f.bits |= bit }
func (f *flagSet) has(bit uint64) bool { return f.bits&bit != 0 }
func (f *flagSet) reset()              { f.bits = 0 }

// hi reports whether any bit above the low 32 is set, i.e. whether this flag word needs its
// upper-half band emitted at all (gated by the segment's have_*_flags_hi header bit, computed
// from attribute-layout assignments in §4.7 and not decided by this package).
func (f *flagSet) hi() bool { return f.bits>>32 != 0 }
