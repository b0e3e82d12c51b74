package segment

import (
	"github.com/pack200/packer/cpool"
	"github.com/pack200/packer/filebands"
	"github.com/pack200/packer/shredder"
)

// Registry owns everything one segment accumulates while being built: the constant pool, class
// bands, file bands, and attribute definitions, plus the Header computed from their final shape.
// It is the band-registry/orchestration component named in §2's component table: the single place
// that knows how to turn "what the shredder and file-band accumulator collected" into "a finalized
// Header ready to serialize".
type Registry struct {
	Pool       *cpool.Builder
	ClassBands *shredder.ClassBands
	Files      *filebands.Bands
	AttrDefs   *AttrDefRegistry

	ClassCount int
}

// NewRegistry returns an empty Registry with freshly constructed sub-components.
func NewRegistry() *Registry {
	return &Registry{
		Pool:       cpool.NewBuilder(),
		ClassBands: &shredder.ClassBands{},
		Files:      filebands.New(),
		AttrDefs:   NewAttrDefRegistry(),
	}
}

// BuildHeader finalizes the constant pool and derives a Header from the registry's current
// contents. defaultClassMajVer is the most-common observed class major version, since §4.8
// specifies the default as "most-common observed" rather than a fixed constant.
func (r *Registry) BuildHeader(defaultClassMajVer int) *Header {
	r.Pool.Finalize()

	h := &Header{
		FileCount:          r.Files.Count(),
		ClassCount:         r.ClassCount,
		SpecialCount:       r.AttrDefs.Count(),
		ICCount:            0, // filled in by the caller once the innerclass tracker has run
		DefaultClassMinVer: 0,
		DefaultClassMajVer: defaultClassMajVer,
	}

	h.CP = r.poolCounts()

	allCodeFlags := len(r.ClassBands.CodeFlagsLo) == len(r.ClassBands.MethodFlagsLo)

	h.ComputeOptions(
		r.AttrDefs.Count() > 0,
		allCodeFlags,
		r.Files.HaveDeflateHint(),
		r.Files.HaveModTimes(),
		r.Files.HaveOptions(),
		len(r.ClassBands.ClassFlagsHi) > 0,
		len(r.ClassBands.FieldFlagsHi) > 0,
		len(r.ClassBands.MethodFlagsHi) > 0,
		len(r.ClassBands.CodeFlagsHi) > 0,
	)

	return h
}

func (r *Registry) poolCounts() CPCounts {
	c := r.Pool.Counts()

	return CPCounts{
		Utf8: c.Utf8, Int: c.Integer, Float: c.Float, Long: c.Long, Double: c.Double,
		String: c.String, Class: c.Class, Signature: c.Signature, Descr: c.NameAndType,
		Field: c.Field, Method: c.Method, InterfaceMethod: c.InterfaceMethod,
	}
}
