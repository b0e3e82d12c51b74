// Package cpool builds the packed constant pool: one deduplicated table per entry kind, each
// entry created on first reference and assigned its final index only once every class in the
// segment has been shredded.
package cpool

// Entry is implemented by every constant-pool entry kind. Index returns -1 until the pool has
// been finalized.
type Entry interface {
	Index() int
}

type entryBase struct {
	index int
}

func (e *entryBase) Index() int { return e.index }

// Utf8 is a UTF-8 string entry. Utf8 entries are the leaves most other entry kinds reference.
type Utf8 struct {
	entryBase
	Value string
}

// Integer is a 32-bit constant.
type Integer struct {
	entryBase
	Value int32
}

// Float is a 32-bit floating point constant.
type Float struct {
	entryBase
	Value float32
}

// Long is a 64-bit constant. Long (and Double) entries occupy two constant-pool slots in a class
// file, a quirk the shredder's index arithmetic accounts for; cpool itself just tracks one Entry.
type Long struct {
	entryBase
	Value int64
}

// Double is a 64-bit floating point constant.
type Double struct {
	entryBase
	Value float64
}

// String is a CONSTANT_String, referencing a Utf8 entry.
type String struct {
	entryBase
	Value *Utf8
}

// Class references the Utf8 entry holding its binary name (e.g. "java/lang/Object").
type Class struct {
	entryBase
	Name *Utf8
}

// Signature is Pack200's compressed stand-in for a NameAndType's descriptor: a form string (e.g.
// "(IL;)V" with class references elided) plus the sequence of Class entries the elided references
// point to, registered in occurrence order.
type Signature struct {
	entryBase
	Form    *Utf8
	Classes []*Class
}

// NameAndType references a name Utf8 and a descriptor, expressed as a Signature.
type NameAndType struct {
	entryBase
	Name      *Utf8
	Signature *Signature
}

// Field is a CONSTANT_Fieldref.
type Field struct {
	entryBase
	Class       *Class
	NameAndType *NameAndType
}

// Method is a CONSTANT_Methodref.
type Method struct {
	entryBase
	Class       *Class
	NameAndType *NameAndType
}

// InterfaceMethod is a CONSTANT_InterfaceMethodref.
type InterfaceMethod struct {
	entryBase
	Class       *Class
	NameAndType *NameAndType
}
