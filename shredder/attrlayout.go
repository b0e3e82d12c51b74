package shredder

import (
	"github.com/pack200/packer/classfile"
	"github.com/pack200/packer/layout"
)

// AttributeLayouts resolves a custom attribute's layout grammar string, if one was registered for
// its (context, name) pair. segment.AttrDefRegistry satisfies this without shredder importing
// segment: the two packages are linked only by this interface's method shape.
type AttributeLayouts interface {
	Lookup(ctx classfile.AttributeContext, name string) (string, bool)
}

type attrKey struct {
	ctx  classfile.AttributeContext
	name string
}

type customAttrEntry struct {
	arena    *layout.Arena
	top      *layout.Layout
	elements []*layout.Element
	reader   *layout.Reader
}

// CustomAttrBands accumulates the per-element sub-bands produced by running every matched custom
// attribute instance's payload through its parsed layout (§4.5, §4.7). A layout string is parsed
// once per (context, name) the first time that attribute is seen in a segment; every later
// instance streams through the same parsed Layout and appends onto the same per-element bands, in
// occurrence order.
type CustomAttrBands struct {
	entries map[attrKey]*customAttrEntry
	order   []attrKey
}

// NewCustomAttrBands returns an empty accumulator, shared across every class a segment shreds.
func NewCustomAttrBands() *CustomAttrBands {
	return &CustomAttrBands{entries: make(map[attrKey]*customAttrEntry)}
}

// apply parses layoutStr the first time (ctx, name) is seen, then streams data through the parsed
// layout, appending each reachable element's value(s) onto that element's persistent band.
func (c *CustomAttrBands) apply(ctx classfile.AttributeContext, name, layoutStr string, data []byte) error {
	key := attrKey{ctx: ctx, name: name}

	entry, ok := c.entries[key]
	if !ok {
		top, arena, err := layout.Parse(layoutStr)
		if err != nil {
			return err
		}
		if err := layout.ResolveCalls(arena); err != nil {
			return err
		}

		entry = &customAttrEntry{arena: arena, top: top, elements: layout.Flatten(arena), reader: layout.NewReader(nil)}
		c.entries[key] = entry
		c.order = append(c.order, key)
	}

	entry.reader.Reset(data)

	return entry.reader.Execute(entry.top)
}

// CustomBand is one serialized sub-band contributed by a custom attribute's layout: the values a
// single Integral/Reference element of (context, name)'s layout accumulated across every instance
// of that attribute in the segment.
type CustomBand struct {
	Context classfile.AttributeContext
	Name    string
	Element *layout.Element
	Values  []int64
}

// Bands returns every accumulated custom-attribute band, grouped by (context, name) in first-seen
// order and then by the element's position in that attribute's flattened layout tree — the order
// a segment serializes these sub-bands in, immediately after the attribute-definition bands they
// belong to.
func (c *CustomAttrBands) Bands() []CustomBand {
	var out []CustomBand

	for _, key := range c.order {
		entry := c.entries[key]
		for _, el := range entry.elements {
			out = append(out, CustomBand{Context: key.ctx, Name: key.name, Element: el, Values: entry.reader.Band(el)})
		}
	}

	return out
}
