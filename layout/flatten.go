package layout

// Flatten returns every Integral and Reference element reachable from any callable in arena —
// the leaves a Reader actually populates a band for — in a stable, deterministic order: callable
// registration order, then definition order within each callable's layout tree. This is the order
// a segment serializes one custom attribute's per-element sub-bands in (§4.5, §4.7); Replication
// and Union bodies are walked but contribute no band of their own, only the elements they contain.
func Flatten(arena *Arena) []*Element {
	var out []*Element
	for _, c := range arena.Callables() {
		out = append(out, flattenLayout(c.Layout)...)
	}

	return out
}

func flattenLayout(l *Layout) []*Element {
	var out []*Element

	for _, el := range l.Elements {
		switch el.Kind {
		case KindIntegral, KindReference:
			out = append(out, el)
		case KindReplication:
			out = append(out, flattenLayout(el.Body)...)
		case KindUnion:
			for _, uc := range el.Cases {
				out = append(out, flattenLayout(uc.Body)...)
			}
			if el.Default != nil {
				out = append(out, flattenLayout(el.Default)...)
			}
		}
	}

	return out
}
