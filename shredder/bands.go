package shredder

// ClassBands holds every per-class/per-member band the Shredder appends to while visiting one
// segment's classes. Each field is one Pack200 band; grouping them in one struct (rather than a
// map keyed by band name) keeps hot-path appends a direct slice access, mirroring the teacher's
// own encoderState grouping of related offset/length fields for cache locality.
type ClassBands struct {
	ClassFlagsLo []int64
	ClassFlagsHi []int64

	FieldFlagsLo []int64
	FieldFlagsHi []int64

	MethodFlagsLo []int64
	MethodFlagsHi []int64

	CodeFlagsLo []int64
	CodeFlagsHi []int64

	CodeHeaders    []int64
	CodeMaxStack   []int64
	CodeMaxLocals  []int64
	CodeHandlerCount []int64

	ClassInnerClassesN []int64

	// Deprecated, Signature, SourceFile and other per-presence-bit value bands are intentionally
	// omitted here: this struct only tracks the bookkeeping bands exercised by the folding,
	// rollback and flag logic in this package. A production segment writer owns the full band
	// registry (see segment.Registry) and composes ClassBands into it.
}

// Lists implements BandSet, returning the address of every band slice this struct owns.
func (b *ClassBands) Lists() []*[]int64 {
	return []*[]int64{
		&b.ClassFlagsLo, &b.ClassFlagsHi,
		&b.FieldFlagsLo, &b.FieldFlagsHi,
		&b.MethodFlagsLo, &b.MethodFlagsHi,
		&b.CodeFlagsLo, &b.CodeFlagsHi,
		&b.CodeHeaders, &b.CodeMaxStack, &b.CodeMaxLocals, &b.CodeHandlerCount,
		&b.ClassInnerClassesN,
	}
}
