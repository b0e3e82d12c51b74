package cpool

// IsInnerClass reports whether a Class entry's binary name looks like an inner class name, by
// scanning for a byte at or below 0x2D. This is a cheap syntactic heuristic over the raw name
// bytes rather than a semantic check against the class's actual nesting metadata — downstream
// consumers (the inner-class tracker) use it only to decide which classes are worth tracking,
// the InnerClasses attribute it is shredded against remains the ultimate source of truth.
func IsInnerClass(c *Class) bool {
	name := c.Name.Value
	for i := 0; i < len(name); i++ {
		if name[i] <= 0x2D {
			return true
		}
	}

	return false
}
