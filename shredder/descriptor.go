package shredder

// ArgumentCount walks a method descriptor's parameter list ("(...)...") and returns the number of
// local-variable argument slots it consumes, counting a long or double as two slots per the JVM's
// own local-variable-slot accounting.
func ArgumentCount(descriptor string) int {
	i := 0
	if i < len(descriptor) && descriptor[i] == '(' {
		i++
	}

	count := 0
	for i < len(descriptor) && descriptor[i] != ')' {
		switch descriptor[i] {
		case 'D', 'J':
			count += 2
			i++
		case 'L':
			i++
			for i < len(descriptor) && descriptor[i] != ';' {
				i++
			}
			i++ // consume ';'
			count++
		case '[':
			for i < len(descriptor) && descriptor[i] == '[' {
				i++
			}
			// the array's element type still follows; consume exactly one type descriptor.
			if i < len(descriptor) {
				switch descriptor[i] {
				case 'L':
					i++
					for i < len(descriptor) && descriptor[i] != ';' {
						i++
					}
					i++
				default:
					i++
				}
			}
			count++
		default: // primitive: B C F I S Z
			i++
			count++
		}
	}

	return count
}
