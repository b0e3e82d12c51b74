package layout

import "github.com/pack200/packer/codec"

// CodecFor returns the BHSD codec a given Integral element's band should use by default, per its
// modifier and uint type: any "O" (bytecode offset) uses BRANCH5, any "P" (bytecode index label)
// uses BCI5, a signed uint type ("S" modifier, but not when the reference type letters are
// "KS"/"RS" — those are Signature references, not integrals) uses SIGNED5, a plain byte uses
// BYTE1, and everything else defaults to UNSIGNED5. The Selector may still substitute a cheaper
// codec at encode time; this is only the starting default.
func CodecFor(el *Element) *codec.BHSD {
	if el.Kind != KindIntegral {
		return codec.Unsigned5
	}

	switch {
	case el.Modifier == 'O':
		return codec.Branch5
	case el.Modifier == 'P':
		return codec.BCI5
	case el.Modifier == 'S':
		return codec.Signed5
	case el.UintType == 'B':
		return codec.ByteCodec
	default:
		return codec.Unsigned5
	}
}
