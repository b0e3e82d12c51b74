// Package classfile declares the external-collaborator interfaces the packer core is specified
// against: a JAR entry iterator and a class-file visitor. Both are treated as already-available
// services (§6 of the format specification names the class-file parser, JAR reading, and
// CPIO/TAR/GZIP framing as out of scope for the packer core); this package only pins down the
// shapes that shredder, filebands and segmenter code against. A production binary wires a real
// ASM-style bytecode parser and archive reader behind these interfaces; this module ships a
// lightweight in-memory implementation (see classfile/memory.go) that is enough to drive and test
// the packer core without pulling in a full class-file parser dependency.
package classfile

// Entry is one item out of a JAR, in the order a JarIterator yields it.
type Entry struct {
	Name      string
	Data      []byte
	ModTime   int64 // seconds since the pack200 epoch, per the packing-file-bands format
	Deflated  bool  // hint: was this entry stored DEFLATEd in the source archive
	Directory bool
}

// JarIterator yields every entry of an input JAR in archive order.
type JarIterator interface {
	// Next returns the next entry, or ok=false once entries are exhausted.
	Next() (Entry, bool, error)
}

// ClassVisitor receives callbacks describing one parsed class file, in the fixed order a
// class-file parser would naturally emit them: Visit, optional VisitSource/VisitOuterClass, zero
// or more VisitInnerClass/VisitAnnotation/VisitField/VisitMethod, then VisitEnd.
type ClassVisitor interface {
	// Visit opens a class: its class-file version, access flags, and name, optional generic
	// signature, superclass name, and implemented interface names.
	Visit(version uint32, access uint16, name, signature, superName string, interfaces []string) error

	VisitSource(name string) error
	VisitOuterClass(owner, name, descriptor string) error
	VisitInnerClass(name string, flags uint16, outerName, innerName string) error
	VisitAnnotation(descriptor string, visible bool) (AnnotationVisitor, error)

	VisitField(access uint16, name, descriptor, signature string, value any) (FieldVisitor, error)
	VisitMethod(access uint16, name, descriptor, signature string, exceptions []string) (MethodVisitor, error)

	VisitEnd() error
}

// FieldVisitor receives callbacks for one field's attributes.
type FieldVisitor interface {
	VisitAnnotation(descriptor string, visible bool) (AnnotationVisitor, error)
	VisitEnd() error
}

// AnnotationVisitor receives callbacks for one annotation's element/value pairs, including nested
// arrays and enum constants, per the "stack of sub-readers" model named in the spec's worked
// encoding-strategy notes for annotation bands.
type AnnotationVisitor interface {
	Visit(name string, value any) error
	VisitEnum(name, descriptor, value string) error
	VisitAnnotation(name, descriptor string) (AnnotationVisitor, error)
	VisitArray(name string) (AnnotationVisitor, error)
	VisitEnd() error
}

// MethodVisitor receives callbacks for one method's code and metadata, in bytecode-instruction
// order for the *Insn family. Opcode is the raw numeric JVM opcode.
type MethodVisitor interface {
	VisitAnnotation(descriptor string, visible bool) (AnnotationVisitor, error)
	VisitParameterAnnotation(parameter int, descriptor string, visible bool) (AnnotationVisitor, error)
	VisitAnnotationDefault() (AnnotationVisitor, error)

	VisitCode() error
	VisitInsn(opcode int) error
	VisitIntInsn(opcode int, operand int) error
	VisitVarInsn(opcode int, varIndex int) error
	VisitTypeInsn(opcode int, typeName string) error
	VisitFieldInsn(opcode int, owner, name, descriptor string) error
	VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) error
	VisitJumpInsn(opcode int, label Label) error
	VisitLabel(label Label) error
	VisitLdcInsn(value any) error
	VisitIincInsn(varIndex, increment int) error
	VisitTableSwitchInsn(min, max int, dflt Label, labels []Label) error
	VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error
	VisitMultiANewArrayInsn(descriptor string, dims int) error

	VisitTryCatchBlock(start, end, handler Label, exceptionType string) error
	VisitLineNumber(line int, start Label) error
	VisitLocalVariable(name, descriptor, signature string, start, end Label, index int) error

	VisitMaxs(maxStack, maxLocals int) error
	VisitEnd() error
}

// Label is an opaque bytecode-position placeholder. Its only role in the packer core is identity:
// two Labels visited at the same point in the instruction stream compare equal once the shredder
// has resolved them to instruction indices (see shredder.LabelTable).
type Label struct {
	id int
}

// NewLabel returns a fresh Label with the given stable identity.
func NewLabel(id int) Label { return Label{id: id} }

// ID returns the identity this Label was constructed with.
func (l Label) ID() int { return l.id }

// AttributeVisitor is an optional extension to ClassVisitor: a parser holding a class-context
// attribute's raw payload bytes calls VisitAttributeData instead of silently dropping them.
// Checked via a type assertion rather than folded into ClassVisitor's fixed callback set, since
// attribute dispatch is layout-driven (§4.5) rather than a fixed per-attribute callback — a
// visitor with no use for raw attribute bytes (one that only ever strips unknown attributes, say)
// has nothing to implement.
type AttributeVisitor interface {
	VisitAttributeData(ctx AttributeContext, name string, data []byte) error
}

// FieldAttributeVisitor is AttributeVisitor's field-scoped counterpart, returned alongside a
// FieldVisitor from VisitField.
type FieldAttributeVisitor interface {
	VisitAttributeData(name string, data []byte) error
}

// MethodAttributeVisitor is AttributeVisitor's method-scoped counterpart, returned alongside a
// MethodVisitor from VisitMethod. ctx distinguishes a method-level attribute from one of its
// Code attribute's nested attributes (ContextMethod vs ContextCode).
type MethodAttributeVisitor interface {
	VisitAttributeData(ctx AttributeContext, name string, data []byte) error
}

// AttributePrototype describes a custom (non-predefined) attribute the packer should know how to
// shred: its name, the structural context it can appear in, and the attribute-layout grammar
// string describing its payload (§4.5, §4.7).
type AttributePrototype struct {
	Name    string
	Context AttributeContext
	Layout  string
}

// AttributeContext is where an AttributePrototype's attribute may legally appear.
type AttributeContext int

const (
	ContextClass AttributeContext = iota
	ContextField
	ContextMethod
	ContextCode
)
