package segment

import "github.com/pack200/packer/classfile"

// attrContext free-index ranges and predefined-index ceilings, per §4.7.
var freeIndices = map[classfile.AttributeContext][]int{
	classfile.ContextClass:  {25, 26, 27, 28, 29, 30, 31},
	classfile.ContextMethod: {26, 27, 28, 29, 30, 31},
	classfile.ContextField:  {18, 23, 24, 25, 26, 27, 28, 29, 30, 31},
	classfile.ContextCode:   {17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31},
}

// AttrDef is one custom-attribute-definition entry, assigned a context-specific index.
type AttrDef struct {
	Context classfile.AttributeContext
	Index   int // 0..31, or 32..63 once the hi range is opened
	Name    string
	Layout  string
}

// AttrDefRegistry assigns indices to custom attribute prototypes and keeps them for the
// attribute-definition bands (§4.7). It does not serialize them itself: packer.writeBands writes
// each definition from All as a BYTE1-coded HeaderByte followed by its name and layout, each
// prefixed with its UNSIGNED5-coded length.
type AttrDefRegistry struct {
	defs map[classfile.AttributeContext][]AttrDef
	next map[classfile.AttributeContext]int // next free-list slot, per context
	hi   map[classfile.AttributeContext]int // next hi-range (32..63) index, per context
}

// NewAttrDefRegistry returns an empty registry.
func NewAttrDefRegistry() *AttrDefRegistry {
	return &AttrDefRegistry{
		defs: make(map[classfile.AttributeContext][]AttrDef),
		next: make(map[classfile.AttributeContext]int),
		hi:   make(map[classfile.AttributeContext]int, 4),
	}
}

// Define assigns proto the next available index in its context's free list, opening the
// {32..63} hi range (and reporting hiOpened=true) once the low free list is exhausted.
func (r *AttrDefRegistry) Define(proto classfile.AttributePrototype) (def AttrDef, hiOpened bool) {
	free := freeIndices[proto.Context]
	slot := r.next[proto.Context]

	var idx int
	if slot < len(free) {
		idx = free[slot]
		r.next[proto.Context] = slot + 1
	} else {
		base := r.hi[proto.Context]
		if base == 0 {
			base = 32
		}
		idx = base
		r.hi[proto.Context] = base + 1
		hiOpened = true
	}

	def = AttrDef{Context: proto.Context, Index: idx, Name: proto.Name, Layout: proto.Layout}
	r.defs[proto.Context] = append(r.defs[proto.Context], def)

	return def, hiOpened
}

// Lookup returns the layout grammar string registered for (ctx, name), if any. This is how
// shredder.Shredder resolves a raw attribute instance to the layout it should be read through
// (shredder.AttributeLayouts); AttrDefRegistry satisfies that interface structurally.
func (r *AttrDefRegistry) Lookup(ctx classfile.AttributeContext, name string) (string, bool) {
	for _, def := range r.defs[ctx] {
		if def.Name == name {
			return def.Layout, true
		}
	}

	return "", false
}

// All returns every defined attribute, grouped class-then-field-then-method-then-code to match
// the order a segment emits its attribute-definition bands in.
func (r *AttrDefRegistry) All() []AttrDef {
	var out []AttrDef
	for _, ctx := range []classfile.AttributeContext{
		classfile.ContextClass, classfile.ContextField, classfile.ContextMethod, classfile.ContextCode,
	} {
		out = append(out, r.defs[ctx]...)
	}

	return out
}

// Count returns how many attribute definitions have been registered across all contexts.
func (r *AttrDefRegistry) Count() int {
	n := 0
	for _, defs := range r.defs {
		n += len(defs)
	}

	return n
}

// HeaderByte computes an AttrDef's packed header value: (context | ((index+1) << 2)), coded BYTE1.
func HeaderByte(def AttrDef) int64 {
	return int64(def.Context) | int64(def.Index+1)<<2
}
