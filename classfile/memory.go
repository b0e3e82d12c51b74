package classfile

// MemoryJar is an in-memory JarIterator over a fixed slice of entries, for tests and the example
// driver that don't want to depend on a real archive reader.
type MemoryJar struct {
	entries []Entry
	pos     int
}

// NewMemoryJar returns a JarIterator yielding entries in the given order.
func NewMemoryJar(entries []Entry) *MemoryJar {
	return &MemoryJar{entries: entries}
}

func (m *MemoryJar) Next() (Entry, bool, error) {
	if m.pos >= len(m.entries) {
		return Entry{}, false, nil
	}

	e := m.entries[m.pos]
	m.pos++

	return e, true, nil
}

// Class is a fully-materialized in-memory class description, used as the source Replay drives
// through a ClassVisitor's callbacks. It stands in for a real parsed class-file structure.
type Class struct {
	Version    uint32
	Access     uint16
	Name       string
	Signature  string
	SuperName  string
	Interfaces []string
	Source     string
	OuterClass *OuterClassRef
	InnerClasses []InnerClassRef
	Fields     []Field
	Methods    []Method
	Attributes []AttributeInstance
}

// AttributeInstance is one raw custom-attribute occurrence to replay through the matching
// AttributeVisitor/FieldAttributeVisitor/MethodAttributeVisitor extension, if the visitor under
// test implements it. Context is only meaningful on a Method's attributes, where it distinguishes
// a method-level attribute from one nested under the method's Code attribute; Class and Field
// attribute instances are always ContextClass/ContextField respectively.
type AttributeInstance struct {
	Context AttributeContext
	Name    string
	Data    []byte
}

type OuterClassRef struct {
	Owner, Name, Descriptor string
}

type InnerClassRef struct {
	Name             string
	Flags            uint16
	OuterName, InnerName string
}

type Field struct {
	Access             uint16
	Name, Descriptor, Signature string
	Value              any
	Attributes         []AttributeInstance
}

type Method struct {
	Access     uint16
	Name, Descriptor, Signature string
	Exceptions []string
	HasCode    bool
	MaxStack, MaxLocals int
	Attributes []AttributeInstance
}

// Replay drives v through c's structure in the fixed callback order a real class-file parser
// would use. It is intentionally minimal: it does not emit bytecode instructions or annotations,
// since nothing in this module's test suite needs per-instruction fidelity from the in-memory
// stand-in — real bytecode is expected to arrive via a production ClassVisitor implementation.
// Attribute instances (c.Attributes and each Field's/Method's own) are replayed through the
// optional AttributeVisitor/FieldAttributeVisitor/MethodAttributeVisitor extensions when v (or
// the field/method sub-visitor it returns) implements them.
func Replay(v ClassVisitor, c Class) error {
	if err := v.Visit(c.Version, c.Access, c.Name, c.Signature, c.SuperName, c.Interfaces); err != nil {
		return err
	}

	if c.Source != "" {
		if err := v.VisitSource(c.Source); err != nil {
			return err
		}
	}

	if c.OuterClass != nil {
		if err := v.VisitOuterClass(c.OuterClass.Owner, c.OuterClass.Name, c.OuterClass.Descriptor); err != nil {
			return err
		}
	}

	for _, ic := range c.InnerClasses {
		if err := v.VisitInnerClass(ic.Name, ic.Flags, ic.OuterName, ic.InnerName); err != nil {
			return err
		}
	}

	if av, ok := v.(AttributeVisitor); ok {
		for _, a := range c.Attributes {
			if err := av.VisitAttributeData(a.Context, a.Name, a.Data); err != nil {
				return err
			}
		}
	}

	for _, f := range c.Fields {
		fv, err := v.VisitField(f.Access, f.Name, f.Descriptor, f.Signature, f.Value)
		if err != nil {
			return err
		}
		if fv != nil {
			if fav, ok := fv.(FieldAttributeVisitor); ok {
				for _, a := range f.Attributes {
					if err := fav.VisitAttributeData(a.Name, a.Data); err != nil {
						return err
					}
				}
			}
			if err := fv.VisitEnd(); err != nil {
				return err
			}
		}
	}

	for _, m := range c.Methods {
		mv, err := v.VisitMethod(m.Access, m.Name, m.Descriptor, m.Signature, m.Exceptions)
		if err != nil {
			return err
		}
		if mv == nil {
			continue
		}
		if mav, ok := mv.(MethodAttributeVisitor); ok {
			for _, a := range m.Attributes {
				if err := mav.VisitAttributeData(a.Context, a.Name, a.Data); err != nil {
					return err
				}
			}
		}
		if m.HasCode {
			if err := mv.VisitCode(); err != nil {
				return err
			}
			if err := mv.VisitMaxs(m.MaxStack, m.MaxLocals); err != nil {
				return err
			}
		}
		if err := mv.VisitEnd(); err != nil {
			return err
		}
	}

	return v.VisitEnd()
}
