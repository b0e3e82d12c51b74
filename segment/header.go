// Package segment computes and serializes one segment's header: the magic, version numbers,
// computed option bits, and the band/CP counts that precede the segment's band data (§4.8).
package segment

import (
	"bytes"

	"github.com/pack200/packer/codec"
	"github.com/pack200/packer/errs"
)

// Magic is the fixed 4-byte signature every segment's byte stream begins with.
var Magic = [4]byte{0xCA, 0xFE, 0xD0, 0x0D}

const (
	MinVersion = 7
	MajVersion = 150
)

// Option bits computed from the segment's content, per §4.8.
const (
	OptSpecialFormats uint32 = 1 << 0 // attribute definitions or a band-header sidecar present
	OptCPNumbers      uint32 = 1 << 1 // any numeric (Int/Float/Long/Double) CP entries
	OptAllCodeFlags   uint32 = 1 << 2 // every method's code_flags is emitted
	OptFileHeaders    uint32 = 1 << 4 // any files present
	OptDeflateHint    uint32 = 1 << 5
	OptFileModTimes   uint32 = 1 << 6
	OptFileOptions    uint32 = 1 << 7
	OptFileSizeHi     uint32 = 1 << 8
	OptClassFlagsHi   uint32 = 1 << 9
	OptFieldFlagsHi   uint32 = 1 << 10
	OptMethodFlagsHi  uint32 = 1 << 11
	OptCodeFlagsHi    uint32 = 1 << 12
)

// CPCounts carries the per-tag constant-pool entry counts a header emits.
type CPCounts struct {
	Utf8, Int, Float, Long, Double          int
	String, Class, Signature, Descr         int
	Field, Method, InterfaceMethod          int
}

// Header is one segment's fixed preamble, computed from the segment's shredded content.
type Header struct {
	Options uint32

	FileCount  int
	ClassCount int

	SpecialCount int // attribute-definition count, when OptSpecialFormats is set

	CP CPCounts

	ICCount int

	DefaultClassMinVer int
	DefaultClassMajVer int
}

// ComputeOptions folds the given observations into h.Options per §4.8's computed-bit rules.
func (h *Header) ComputeOptions(hasSpecialFormats, hasAllCodeFlags, deflateHint, fileModTimes, fileOptions bool,
	classFlagsHi, fieldFlagsHi, methodFlagsHi, codeFlagsHi bool,
) {
	h.Options = 0

	if hasSpecialFormats {
		h.Options |= OptSpecialFormats
	}
	if h.CP.Int > 0 || h.CP.Float > 0 || h.CP.Long > 0 || h.CP.Double > 0 {
		h.Options |= OptCPNumbers
	}
	if hasAllCodeFlags {
		h.Options |= OptAllCodeFlags
	}
	if h.FileCount > 0 {
		h.Options |= OptFileHeaders
	}
	if deflateHint {
		h.Options |= OptDeflateHint
	}
	if fileModTimes {
		h.Options |= OptFileModTimes
	}
	if fileOptions {
		h.Options |= OptFileOptions
	}
	if classFlagsHi {
		h.Options |= OptClassFlagsHi
	}
	if fieldFlagsHi {
		h.Options |= OptFieldFlagsHi
	}
	if methodFlagsHi {
		h.Options |= OptMethodFlagsHi
	}
	if codeFlagsHi {
		h.Options |= OptCodeFlagsHi
	}
}

// Bytes serializes the header in the fixed emission order from §4.8: magic, minver, majver,
// archive_options, file counts (if OptFileHeaders), special counts (if OptSpecialFormats), CP
// counts, ic_count, default class version, class_count.
func (h *Header) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(Magic[:])
	buf.WriteByte(MinVersion)
	buf.WriteByte(MajVersion)

	if err := writeUnsigned(&buf, int64(h.Options)); err != nil {
		return nil, err
	}

	if h.Options&OptFileHeaders != 0 {
		if err := writeUnsigned(&buf, int64(h.FileCount)); err != nil {
			return nil, err
		}
	}

	if h.Options&OptSpecialFormats != 0 {
		if err := writeUnsigned(&buf, int64(h.SpecialCount)); err != nil {
			return nil, err
		}
	}

	if err := writeUnsigned(&buf, int64(h.CP.Utf8)); err != nil {
		return nil, err
	}

	if h.Options&OptCPNumbers != 0 {
		for _, n := range []int{h.CP.Int, h.CP.Float, h.CP.Long, h.CP.Double} {
			if err := writeUnsigned(&buf, int64(n)); err != nil {
				return nil, err
			}
		}
	}

	for _, n := range []int{h.CP.String, h.CP.Class, h.CP.Signature, h.CP.Descr, h.CP.Field, h.CP.Method, h.CP.InterfaceMethod} {
		if err := writeUnsigned(&buf, int64(n)); err != nil {
			return nil, err
		}
	}

	if err := writeUnsigned(&buf, int64(h.ICCount)); err != nil {
		return nil, err
	}

	if err := writeUnsigned(&buf, int64(h.DefaultClassMinVer)); err != nil {
		return nil, err
	}
	if err := writeUnsigned(&buf, int64(h.DefaultClassMajVer)); err != nil {
		return nil, err
	}

	if err := writeUnsigned(&buf, int64(h.ClassCount)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeUnsigned(buf *bytes.Buffer, v int64) error {
	return codec.Unsigned5.EncodeValue(buf, v, 0)
}

// ValidateFlags checks that Options only uses bits this package knows about, returning
// errs.ErrInvalidHeaderFlags wrapped with the offending bit mask otherwise.
func (h *Header) ValidateFlags() error {
	const known = OptSpecialFormats | OptCPNumbers | OptAllCodeFlags | OptFileHeaders |
		OptDeflateHint | OptFileModTimes | OptFileOptions | OptFileSizeHi |
		OptClassFlagsHi | OptFieldFlagsHi | OptMethodFlagsHi | OptCodeFlagsHi

	if h.Options&^known != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
