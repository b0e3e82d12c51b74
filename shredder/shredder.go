package shredder

import (
	"strings"

	"github.com/pack200/packer/classfile"
	"github.com/pack200/packer/cpool"
	"github.com/pack200/packer/errs"
	"github.com/pack200/packer/innerclass"
)

// UnknownAttributeAction is the disposition the Shredder applies to an attribute with no matching
// classfile.AttributePrototype and no layout known to it.
type UnknownAttributeAction int

const (
	ActionPass UnknownAttributeAction = iota
	ActionError
	ActionStrip
)

// Outcome is the sum-type result of shredding one class: exactly one of Shredded or Passed is set.
// Modeling it as a struct with a discriminant (rather than returning an error for the pass-through
// path) keeps pass-through — an expected, common outcome when unknown_attribute_action is "pass"
// — out of the error-handling path entirely.
type Outcome struct {
	kind    outcomeKind
	class   *ShreddedClass
	rawFile []byte
}

type outcomeKind int

const (
	outcomeShredded outcomeKind = iota
	outcomePassed
)

func (o Outcome) IsShredded() bool       { return o.kind == outcomeShredded }
func (o Outcome) IsPassed() bool         { return o.kind == outcomePassed }
func (o Outcome) Shredded() *ShreddedClass { return o.class }
func (o Outcome) PassedBytes() []byte    { return o.rawFile }

// ShreddedClass is the accumulated per-class state once a class has been fully shredded into bands.
type ShreddedClass struct {
	Name        string
	ClassFlags  flagSet
	Fields      []ShreddedField
	Methods     []ShreddedMethod
	InnerClassLocalEntries []innerclass.Tuple
}

type ShreddedField struct {
	Name  string
	Flags flagSet
}

type ShreddedMethod struct {
	Name            string
	Flags           flagSet
	ArgumentCount   int
	MaxStackAdjusted  int
	MaxLocalsAdjusted int
	CodeHeader      int
	CodeHeaderFolded bool
}

// Shredder implements classfile.ClassVisitor, turning one parsed class's callbacks into band
// contributions, flag-bit bookkeeping and constant-pool entries. It is not safe for concurrent use;
// a segment shreds its classes one at a time on a single goroutine, the same single-writer shape
// the teacher's NumericEncoder uses for one metric at a time.
type Shredder struct {
	pool       *cpool.Builder
	tracker    *innerclass.Tracker
	bands      *ClassBands
	unknownAction UnknownAttributeAction
	layouts     AttributeLayouts
	customBands *CustomAttrBands

	cur        *ShreddedClass
	curMethod  *ShreddedMethod
	curStatic  bool
	curLabels  *LabelTable

	snapshot   Snapshot
	malformed  bool
}

// NewShredder returns a Shredder writing constant-pool entries into pool, inner-class references
// into tracker, and bookkeeping bands into bands, with the given disposition for unrecognized
// attributes. layouts resolves a registered custom attribute's layout grammar string (nil if the
// caller registered none); customBands accumulates the per-element sub-bands every matched
// attribute instance produces, shared across every class the caller shreds in one segment.
func NewShredder(pool *cpool.Builder, tracker *innerclass.Tracker, bands *ClassBands, unknownAction UnknownAttributeAction, layouts AttributeLayouts, customBands *CustomAttrBands) *Shredder {
	return &Shredder{pool: pool, tracker: tracker, bands: bands, unknownAction: unknownAction, layouts: layouts, customBands: customBands}
}

// Visit opens a class, per classfile.ClassVisitor. It snapshots the band set so a subsequent
// pass-through can roll back everything this class contributes.
func (s *Shredder) Visit(version uint32, access uint16, name, signature, superName string, interfaces []string) error {
	s.snapshot = TakeSnapshot(s.bands)
	s.cur = &ShreddedClass{Name: name}
	s.malformed = false

	s.pool.AddClass(name)
	if superName != "" {
		s.pool.AddClass(superName)
	}
	for _, iface := range interfaces {
		s.pool.AddClass(iface)
	}

	s.recordInnerReference(name, superName)
	for _, iface := range interfaces {
		s.recordInnerReference(name, iface)
	}

	if signature != "" {
		s.cur.ClassFlags.set(FlagSignature)
	}

	return nil
}

func (s *Shredder) recordInnerReference(from, target string) {
	if target == "" {
		return
	}
	if strings.Contains(target, "$") {
		s.tracker.AddReference(from, target)
	}
}

func (s *Shredder) VisitSource(name string) error {
	s.cur.ClassFlags.set(FlagSourceFileOrConstantValueOrCode)

	return nil
}

func (s *Shredder) VisitOuterClass(owner, name, descriptor string) error {
	s.cur.ClassFlags.set(FlagEnclosingMethodOrExceptions)

	return nil
}

func (s *Shredder) VisitInnerClass(name string, flags uint16, outerName, innerName string) error {
	s.tracker.Record(innerclass.Tuple{Inner: name, Flags: uint32(flags), Outer: outerName, Name: innerName})

	return nil
}

func (s *Shredder) VisitAnnotation(descriptor string, visible bool) (classfile.AnnotationVisitor, error) {
	if visible {
		s.cur.ClassFlags.set(FlagRuntimeVisibleAnnotations)
	} else {
		s.cur.ClassFlags.set(FlagRuntimeInvisibleAnnotations)
	}

	return nil, nil
}

func (s *Shredder) VisitField(access uint16, name, descriptor, signature string, value any) (classfile.FieldVisitor, error) {
	f := ShreddedField{Name: name}
	if signature != "" {
		f.Flags.set(FlagSignature)
	}
	if value != nil {
		f.Flags.set(FlagSourceFileOrConstantValueOrCode)
	}
	s.cur.Fields = append(s.cur.Fields, f)

	return &fieldVisitor{shredder: s, idx: len(s.cur.Fields) - 1}, nil
}

func (s *Shredder) VisitMethod(access uint16, name, descriptor, signature string, exceptions []string) (classfile.MethodVisitor, error) {
	m := ShreddedMethod{Name: name, ArgumentCount: ArgumentCount(descriptor)}
	if signature != "" {
		m.Flags.set(FlagSignature)
	}
	if len(exceptions) > 0 {
		m.Flags.set(FlagEnclosingMethodOrExceptions)
	}
	for _, exc := range exceptions {
		s.recordInnerReference(s.cur.Name, exc)
	}

	s.cur.Methods = append(s.cur.Methods, m)
	idx := len(s.cur.Methods) - 1
	s.curMethod = &s.cur.Methods[idx]
	s.curStatic = access&0x0008 != 0 // ACC_STATIC
	s.curLabels = NewLabelTable()

	return &methodVisitor{shredder: s, idx: idx}, nil
}

func (s *Shredder) VisitEnd() error {
	entries := s.tracker.LocalEntries(s.cur.Name)
	if len(entries) > 0 {
		s.cur.ClassFlags.set(FlagInnerClassesLocal)
		s.cur.InnerClassLocalEntries = entries
		s.bands.ClassInnerClassesN = append(s.bands.ClassInnerClassesN, int64(len(entries)))
	}

	if s.cur.ClassFlags.hi() {
		s.bands.ClassFlagsHi = append(s.bands.ClassFlagsHi, int64(s.cur.ClassFlags.bits>>32))
	}
	s.bands.ClassFlagsLo = append(s.bands.ClassFlagsLo, int64(s.cur.ClassFlags.bits&0xffffffff))

	return nil
}

// endMethod finalizes the method currently open (after VisitMaxs/VisitEnd on its MethodVisitor),
// applying the max-locals adjustment and attempting code-header folding.
func (s *Shredder) endMethod(maxStack, maxLocals int) error {
	m := s.curMethod

	adjustedLocals := maxLocals
	if !s.curStatic {
		adjustedLocals--
	}
	adjustedLocals -= m.ArgumentCount
	if adjustedLocals < 0 {
		adjustedLocals = 0
	}

	m.MaxStackAdjusted = maxStack
	m.MaxLocalsAdjusted = adjustedLocals

	if err := s.curLabels.Resolve(); err != nil {
		return err
	}

	if header, ok := FoldCodeHeader(0, maxStack, adjustedLocals); ok {
		m.CodeHeader = header
		m.CodeHeaderFolded = true
		s.bands.CodeHeaders = append(s.bands.CodeHeaders, int64(header))
	} else {
		s.bands.CodeMaxStack = append(s.bands.CodeMaxStack, int64(maxStack))
		s.bands.CodeMaxLocals = append(s.bands.CodeMaxLocals, int64(adjustedLocals))
	}

	if m.Flags.hi() {
		s.bands.MethodFlagsHi = append(s.bands.MethodFlagsHi, int64(m.Flags.bits>>32))
	}
	s.bands.MethodFlagsLo = append(s.bands.MethodFlagsLo, int64(m.Flags.bits&0xffffffff))

	return nil
}

// PassThrough rolls back every band this class contributed since Visit was called, per §4.6.1,
// and returns the Outcome the caller should route into the file bands as if raw were a non-class
// file.
func (s *Shredder) PassThrough(raw []byte) Outcome {
	Restore(s.bands, s.snapshot)

	return Outcome{kind: outcomePassed, rawFile: raw}
}

// Finish returns the Shredded outcome for the class most recently visited to completion.
func (s *Shredder) Finish() Outcome {
	return Outcome{kind: outcomeShredded, class: s.cur}
}

// MalformedClass reports whether VisitUnknownAttribute (or another callback) flagged this class as
// unreadable under the current unknown_attribute_action policy, or the parser never opened a class
// on this Shredder at all (Visit was never called).
func (s *Shredder) MalformedClass() bool { return s.malformed || s.cur == nil }

// VisitUnknownAttribute is invoked by a classfile.ClassVisitor implementation (not part of the
// classfile.ClassVisitor interface itself, since attribute dispatch is layout-driven rather than a
// fixed callback) when it encounters an attribute with no matching prototype. It applies the
// Shredder's configured policy.
func (s *Shredder) VisitUnknownAttribute(name string) error {
	switch s.unknownAction {
	case ActionStrip:
		return nil
	case ActionError:
		s.malformed = true

		return errs.NewAttributeError(errs.ErrUnknownAttribute, s.cur.Name, name, -1)
	default: // ActionPass
		s.malformed = true

		return nil
	}
}

// VisitAttributeData implements classfile.AttributeVisitor: it is called with a class-context
// attribute's raw payload bytes. A registered prototype's layout grammar shreds the payload into
// its own per-element bands (§4.5); an attribute with no matching prototype falls back to
// VisitUnknownAttribute's pass/error/strip policy.
func (s *Shredder) VisitAttributeData(ctx classfile.AttributeContext, name string, data []byte) error {
	return s.visitAttributeInstance(ctx, name, data)
}

func (s *Shredder) visitAttributeInstance(ctx classfile.AttributeContext, name string, data []byte) error {
	if s.layouts == nil {
		return s.VisitUnknownAttribute(name)
	}

	layoutStr, ok := s.layouts.Lookup(ctx, name)
	if !ok {
		return s.VisitUnknownAttribute(name)
	}

	return s.customBands.apply(ctx, name, layoutStr, data)
}

type fieldVisitor struct {
	shredder *Shredder
	idx      int
}

func (v *fieldVisitor) VisitAnnotation(descriptor string, visible bool) (classfile.AnnotationVisitor, error) {
	f := &v.shredder.cur.Fields[v.idx]
	if visible {
		f.Flags.set(FlagRuntimeVisibleAnnotations)
	} else {
		f.Flags.set(FlagRuntimeInvisibleAnnotations)
	}

	return nil, nil
}

// VisitAttributeData implements classfile.FieldAttributeVisitor for this field's raw attributes.
func (v *fieldVisitor) VisitAttributeData(name string, data []byte) error {
	return v.shredder.visitAttributeInstance(classfile.ContextField, name, data)
}

func (v *fieldVisitor) VisitEnd() error {
	f := v.shredder.cur.Fields[v.idx]
	if f.Flags.hi() {
		v.shredder.bands.FieldFlagsHi = append(v.shredder.bands.FieldFlagsHi, int64(f.Flags.bits>>32))
	}
	v.shredder.bands.FieldFlagsLo = append(v.shredder.bands.FieldFlagsLo, int64(f.Flags.bits&0xffffffff))

	return nil
}

type methodVisitor struct {
	shredder  *Shredder
	idx       int
	hasCode   bool
}

func (v *methodVisitor) VisitAnnotation(descriptor string, visible bool) (classfile.AnnotationVisitor, error) {
	m := &v.shredder.cur.Methods[v.idx]
	if visible {
		m.Flags.set(FlagRuntimeVisibleAnnotations)
	} else {
		m.Flags.set(FlagRuntimeInvisibleAnnotations)
	}

	return nil, nil
}

func (v *methodVisitor) VisitParameterAnnotation(parameter int, descriptor string, visible bool) (classfile.AnnotationVisitor, error) {
	m := &v.shredder.cur.Methods[v.idx]
	if visible {
		m.Flags.set(FlagRuntimeVisibleParameterAnnotations)
	} else {
		m.Flags.set(FlagRuntimeInvisibleParameterAnnotations)
	}

	return nil, nil
}

func (v *methodVisitor) VisitAnnotationDefault() (classfile.AnnotationVisitor, error) {
	v.shredder.cur.Methods[v.idx].Flags.set(FlagAnnotationDefault)

	return nil, nil
}

// VisitAttributeData implements classfile.MethodAttributeVisitor. ctx distinguishes a
// method-level attribute from one nested under this method's Code attribute.
func (v *methodVisitor) VisitAttributeData(ctx classfile.AttributeContext, name string, data []byte) error {
	return v.shredder.visitAttributeInstance(ctx, name, data)
}

func (v *methodVisitor) VisitCode() error {
	v.hasCode = true
	v.shredder.cur.Methods[v.idx].Flags.set(FlagSourceFileOrConstantValueOrCode)

	return nil
}

func (v *methodVisitor) VisitInsn(opcode int) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitIntInsn(opcode int, operand int) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitVarInsn(opcode int, varIndex int) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitTypeInsn(opcode int, typeName string) error {
	v.shredder.pool.AddClass(typeName)
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitFieldInsn(opcode int, owner, name, descriptor string) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitJumpInsn(opcode int, label classfile.Label) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitLabel(label classfile.Label) error {
	v.shredder.curLabels.Mark(label)

	return nil
}

func (v *methodVisitor) VisitLdcInsn(value any) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitIincInsn(varIndex, increment int) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitTableSwitchInsn(min, max int, dflt classfile.Label, labels []classfile.Label) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitLookupSwitchInsn(dflt classfile.Label, keys []int, labels []classfile.Label) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitMultiANewArrayInsn(descriptor string, dims int) error {
	v.shredder.curLabels.Advance()

	return nil
}

func (v *methodVisitor) VisitTryCatchBlock(start, end, handler classfile.Label, exceptionType string) error {
	if exceptionType != "" {
		v.shredder.pool.AddClass(exceptionType)
	}

	return nil
}

func (v *methodVisitor) VisitLineNumber(line int, start classfile.Label) error {
	return nil
}

func (v *methodVisitor) VisitLocalVariable(name, descriptor, signature string, start, end classfile.Label, index int) error {
	return nil
}

func (v *methodVisitor) VisitMaxs(maxStack, maxLocals int) error {
	if !v.hasCode {
		return nil
	}

	return v.shredder.endMethod(maxStack, maxLocals)
}

func (v *methodVisitor) VisitEnd() error {
	return nil
}
