package cpool

import (
	"reflect"
	"sort"

	"github.com/pack200/packer/internal/hash"
)

// Builder accumulates constant-pool entries across every class shredded into one segment,
// deduplicating by content, and assigns final indices once the segment is complete.
//
// Each Add* method is idempotent: calling it twice with equal content returns the same Entry.
// Entries carry index -1 until Finalize runs.
type Builder struct {
	utf8    map[uint64][]*Utf8
	integer map[int32]*Integer
	float   map[float32]*Float
	long    map[int64]*Long
	double  map[float64]*Double

	str             map[*Utf8]*String
	class           map[*Utf8]*Class
	signature       map[string]*Signature
	nameAndType     map[[2]uintptr]*NameAndType
	field           map[[2]uintptr]*Field
	method          map[[2]uintptr]*Method
	interfaceMethod map[[2]uintptr]*InterfaceMethod

	finalized bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		utf8:            make(map[uint64][]*Utf8),
		integer:         make(map[int32]*Integer),
		float:           make(map[float32]*Float),
		long:            make(map[int64]*Long),
		double:          make(map[float64]*Double),
		str:             make(map[*Utf8]*String),
		class:           make(map[*Utf8]*Class),
		signature:       make(map[string]*Signature),
		nameAndType:     make(map[[2]uintptr]*NameAndType),
		field:           make(map[[2]uintptr]*Field),
		method:          make(map[[2]uintptr]*Method),
		interfaceMethod: make(map[[2]uintptr]*InterfaceMethod),
	}
}

// AddUtf8 deduplicates by string content, using an xxhash64 bucket key with exact-match
// verification to guard against hash collisions.
func (b *Builder) AddUtf8(s string) *Utf8 {
	key := hash.String(s)
	for _, e := range b.utf8[key] {
		if e.Value == s {
			return e
		}
	}

	e := &Utf8{entryBase: entryBase{index: -1}, Value: s}
	b.utf8[key] = append(b.utf8[key], e)

	return e
}

// AddInteger deduplicates CONSTANT_Integer entries by value.
func (b *Builder) AddInteger(v int32) *Integer {
	if e, ok := b.integer[v]; ok {
		return e
	}

	e := &Integer{entryBase: entryBase{index: -1}, Value: v}
	b.integer[v] = e

	return e
}

// AddFloat deduplicates CONSTANT_Float entries by value.
func (b *Builder) AddFloat(v float32) *Float {
	if e, ok := b.float[v]; ok {
		return e
	}

	e := &Float{entryBase: entryBase{index: -1}, Value: v}
	b.float[v] = e

	return e
}

// AddLong deduplicates CONSTANT_Long entries by value.
func (b *Builder) AddLong(v int64) *Long {
	if e, ok := b.long[v]; ok {
		return e
	}

	e := &Long{entryBase: entryBase{index: -1}, Value: v}
	b.long[v] = e

	return e
}

// AddDouble deduplicates CONSTANT_Double entries by value.
func (b *Builder) AddDouble(v float64) *Double {
	if e, ok := b.double[v]; ok {
		return e
	}

	e := &Double{entryBase: entryBase{index: -1}, Value: v}
	b.double[v] = e

	return e
}

// AddString deduplicates CONSTANT_String entries by their referenced Utf8.
func (b *Builder) AddString(s string) *String {
	u := b.AddUtf8(s)
	if e, ok := b.str[u]; ok {
		return e
	}

	e := &String{entryBase: entryBase{index: -1}, Value: u}
	b.str[u] = e

	return e
}

// AddClass deduplicates CONSTANT_Class entries by binary name.
func (b *Builder) AddClass(name string) *Class {
	u := b.AddUtf8(name)
	if e, ok := b.class[u]; ok {
		return e
	}

	e := &Class{entryBase: entryBase{index: -1}, Name: u}
	b.class[u] = e

	return e
}

// AddSignature deduplicates a descriptor, registering every Class entry it references (in the
// order they occur) along the way.
func (b *Builder) AddSignature(form string, referencedClasses []string) *Signature {
	if e, ok := b.signature[signatureKey(form, referencedClasses)]; ok {
		return e
	}

	formEntry := b.AddUtf8(form)
	classes := make([]*Class, 0, len(referencedClasses))
	for _, c := range referencedClasses {
		classes = append(classes, b.AddClass(c))
	}

	e := &Signature{entryBase: entryBase{index: -1}, Form: formEntry, Classes: classes}
	b.signature[signatureKey(form, referencedClasses)] = e

	return e
}

func signatureKey(form string, classes []string) string {
	key := form + "\x00"
	for _, c := range classes {
		key += c + "\x00"
	}

	return key
}

// AddNameAndType deduplicates by (name, signature) identity.
func (b *Builder) AddNameAndType(name string, sig *Signature) *NameAndType {
	nameEntry := b.AddUtf8(name)
	key := pairKey(nameEntry, sig)
	if e, ok := b.nameAndType[key]; ok {
		return e
	}

	e := &NameAndType{entryBase: entryBase{index: -1}, Name: nameEntry, Signature: sig}
	b.nameAndType[key] = e

	return e
}

// AddField deduplicates a CONSTANT_Fieldref by (class, name-and-type) identity.
func (b *Builder) AddField(class *Class, nat *NameAndType) *Field {
	key := pairKey(class, nat)
	if e, ok := b.field[key]; ok {
		return e
	}

	e := &Field{entryBase: entryBase{index: -1}, Class: class, NameAndType: nat}
	b.field[key] = e

	return e
}

// AddMethod deduplicates a CONSTANT_Methodref by (class, name-and-type) identity.
func (b *Builder) AddMethod(class *Class, nat *NameAndType) *Method {
	key := pairKey(class, nat)
	if e, ok := b.method[key]; ok {
		return e
	}

	e := &Method{entryBase: entryBase{index: -1}, Class: class, NameAndType: nat}
	b.method[key] = e

	return e
}

// AddInterfaceMethod deduplicates a CONSTANT_InterfaceMethodref by (class, name-and-type) identity.
func (b *Builder) AddInterfaceMethod(class *Class, nat *NameAndType) *InterfaceMethod {
	key := pairKey(class, nat)
	if e, ok := b.interfaceMethod[key]; ok {
		return e
	}

	e := &InterfaceMethod{entryBase: entryBase{index: -1}, Class: class, NameAndType: nat}
	b.interfaceMethod[key] = e

	return e
}

func pairKey(a, b any) [2]uintptr {
	return [2]uintptr{ptrOf(a), ptrOf(b)}
}

// ptrOf extracts the pointer value backing a concrete *T stored in an interface, for use as a map
// key identifying reference identity rather than deep equality. Every caller passes an already-
// deduplicated Entry pointer, so identity equality is exactly the comparison a (class,
// name-and-type) pair needs.
func ptrOf(v any) uintptr {
	return reflect.ValueOf(v).Pointer()
}

// Counts is the number of entries the Builder currently holds, broken down by CP tag.
type Counts struct {
	Utf8, Integer, Float, Long, Double                  int
	String, Class, Signature, NameAndType               int
	Field, Method, InterfaceMethod                       int
}

// Counts reports how many entries of each kind are registered. Safe to call before or after
// Finalize; the counts are identical either way since Finalize only sorts and assigns indices.
func (b *Builder) Counts() Counts {
	utf8Count := 0
	for _, bucket := range b.utf8 {
		utf8Count += len(bucket)
	}

	return Counts{
		Utf8:            utf8Count,
		Integer:         len(b.integer),
		Float:           len(b.float),
		Long:            len(b.long),
		Double:          len(b.double),
		String:          len(b.str),
		Class:           len(b.class),
		Signature:       len(b.signature),
		NameAndType:     len(b.nameAndType),
		Field:           len(b.field),
		Method:          len(b.method),
		InterfaceMethod: len(b.interfaceMethod),
	}
}

// Finalized reports whether Finalize has run.
func (b *Builder) Finalized() bool { return b.finalized }

// Finalize sorts every entry kind by its stable key and assigns contiguous indices, in the order
// Utf8, Integer, Float, Long, Double, String, Class, Signature, NameAndType, Field, Method,
// InterfaceMethod. It is idempotent: calling it again after the first call is a no-op.
func (b *Builder) Finalize() {
	if b.finalized {
		return
	}
	b.finalized = true

	next := 0

	utf8s := flattenUtf8(b.utf8)
	sort.Slice(utf8s, func(i, j int) bool { return utf8s[i].Value < utf8s[j].Value })
	next = assign(utf8s, next)

	integers := make([]*Integer, 0, len(b.integer))
	for _, e := range b.integer {
		integers = append(integers, e)
	}
	sort.Slice(integers, func(i, j int) bool { return integers[i].Value < integers[j].Value })
	next = assign(integers, next)

	floats := make([]*Float, 0, len(b.float))
	for _, e := range b.float {
		floats = append(floats, e)
	}
	sort.Slice(floats, func(i, j int) bool { return floats[i].Value < floats[j].Value })
	next = assign(floats, next)

	longs := make([]*Long, 0, len(b.long))
	for _, e := range b.long {
		longs = append(longs, e)
	}
	sort.Slice(longs, func(i, j int) bool { return longs[i].Value < longs[j].Value })
	next = assign(longs, next)

	doubles := make([]*Double, 0, len(b.double))
	for _, e := range b.double {
		doubles = append(doubles, e)
	}
	sort.Slice(doubles, func(i, j int) bool { return doubles[i].Value < doubles[j].Value })
	next = assign(doubles, next)

	strs := make([]*String, 0, len(b.str))
	for _, e := range b.str {
		strs = append(strs, e)
	}
	sort.Slice(strs, func(i, j int) bool { return strs[i].Value.Value < strs[j].Value.Value })
	next = assign(strs, next)

	classes := make([]*Class, 0, len(b.class))
	for _, e := range b.class {
		classes = append(classes, e)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name.Value < classes[j].Name.Value })
	next = assign(classes, next)

	sigs := make([]*Signature, 0, len(b.signature))
	for _, e := range b.signature {
		sigs = append(sigs, e)
	}
	sort.Slice(sigs, func(i, j int) bool {
		if sigs[i].Form.Value != sigs[j].Form.Value {
			return sigs[i].Form.Value < sigs[j].Form.Value
		}

		return len(sigs[i].Classes) < len(sigs[j].Classes)
	})
	next = assign(sigs, next)

	nats := make([]*NameAndType, 0, len(b.nameAndType))
	for _, e := range b.nameAndType {
		nats = append(nats, e)
	}
	sort.Slice(nats, func(i, j int) bool {
		if nats[i].Signature.Index() != nats[j].Signature.Index() {
			return nats[i].Signature.Index() < nats[j].Signature.Index()
		}

		return nats[i].Name.Index() < nats[j].Name.Index()
	})
	next = assign(nats, next)

	fields := make([]*Field, 0, len(b.field))
	for _, e := range b.field {
		fields = append(fields, e)
	}
	sort.Slice(fields, func(i, j int) bool {
		if fields[i].Class.Index() != fields[j].Class.Index() {
			return fields[i].Class.Index() < fields[j].Class.Index()
		}

		return fields[i].NameAndType.Index() < fields[j].NameAndType.Index()
	})
	next = assign(fields, next)

	methods := make([]*Method, 0, len(b.method))
	for _, e := range b.method {
		methods = append(methods, e)
	}
	sort.Slice(methods, func(i, j int) bool {
		if methods[i].Class.Index() != methods[j].Class.Index() {
			return methods[i].Class.Index() < methods[j].Class.Index()
		}

		return methods[i].NameAndType.Index() < methods[j].NameAndType.Index()
	})
	next = assign(methods, next)

	ifaceMethods := make([]*InterfaceMethod, 0, len(b.interfaceMethod))
	for _, e := range b.interfaceMethod {
		ifaceMethods = append(ifaceMethods, e)
	}
	sort.Slice(ifaceMethods, func(i, j int) bool {
		if ifaceMethods[i].Class.Index() != ifaceMethods[j].Class.Index() {
			return ifaceMethods[i].Class.Index() < ifaceMethods[j].Class.Index()
		}

		return ifaceMethods[i].NameAndType.Index() < ifaceMethods[j].NameAndType.Index()
	})
	_ = assign(ifaceMethods, next)
}

func flattenUtf8(buckets map[uint64][]*Utf8) []*Utf8 {
	out := make([]*Utf8, 0)
	for _, bucket := range buckets {
		out = append(out, bucket...)
	}

	return out
}

func assign[T Entry](entries []T, next int) int {
	for _, e := range entries {
		setIndex(e, next)
		next++
	}

	return next
}

// setIndex is a small seam allowing assign to remain generic over concrete *T types without each
// one exposing a public index setter.
func setIndex(e Entry, idx int) {
	switch v := e.(type) {
	case *Utf8:
		v.index = idx
	case *Integer:
		v.index = idx
	case *Float:
		v.index = idx
	case *Long:
		v.index = idx
	case *Double:
		v.index = idx
	case *String:
		v.index = idx
	case *Class:
		v.index = idx
	case *Signature:
		v.index = idx
	case *NameAndType:
		v.index = idx
	case *Field:
		v.index = idx
	case *Method:
		v.index = idx
	case *InterfaceMethod:
		v.index = idx
	}
}
