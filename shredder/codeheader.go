package shredder

// FoldCodeHeader computes the single-byte codeHeaders value for a method whose Code attribute has
// handlerCount (0, 1, or 2) exception handlers and the given maxStack/maxLocals, per §4.6's
// folding ranges. ok is false when the method doesn't qualify for folding (more than 2 handlers,
// or values outside the documented ranges), in which case the shredder must emit maxStack,
// maxLocals and handlerCount as separate band entries instead.
func FoldCodeHeader(handlerCount, maxStack, maxLocals int) (header int, ok bool) {
	switch handlerCount {
	case 0:
		if maxStack >= 12 {
			return 0, false
		}
		h := maxLocals*12 + maxStack + 1
		if h >= 145 {
			return 0, false
		}

		return h, true
	case 1:
		if maxStack >= 8 || maxLocals >= 8 {
			return 0, false
		}

		return 145 + maxLocals*8 + maxStack, true
	case 2:
		if maxStack >= 8 || maxLocals >= 8 {
			return 0, false
		}
		h := 209 + maxLocals*8 + maxStack
		if h > 255 {
			return 0, false
		}

		return h, true
	default:
		return 0, false
	}
}
