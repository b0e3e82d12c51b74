// Package innerclass tracks inner-class tuples observed while shredding a segment's classes,
// computes which tuples are "predictable" from the `$`-convention of their class name versus
// which need an explicit local entry, and propagates cross-class references so the shredder
// knows which classes need a local InnerClasses attribute (class_flags bit 23).
package innerclass

import "strings"

// Tuple is one inner-class record: (inner class, flags, outer class, inner name), per the format's
// IC-tuple invariant — if flags bit 16 is set, Outer and Name must both be present; otherwise both
// must be absent and Inner must encode them via the "$" convention.
type Tuple struct {
	Inner string
	Flags uint32
	Outer string // empty when predictable from Inner's name
	Name  string // empty when predictable, or when Inner is anonymous
}

// icExplicitBit is the IC-tuple flag bit (bit 16) this package treats as "explicit outer/name
// required", per the format's IC-tuple invariant.
const icExplicitBit = 1 << 16

// Explicit reports whether t's (Outer, Name) pair must be written out, rather than derived from
// Inner's class name by the "$" convention.
func (t Tuple) Explicit() bool { return t.Flags&icExplicitBit != 0 }

// Tracker accumulates IC tuples discovered across a segment's classes and the cross-class
// references each shredded class makes to an inner class, mirroring the hash-map-plus-ordered-list
// shape used elsewhere in this codebase for a "seen set with stable emission order".
type Tracker struct {
	tuples     map[string]Tuple   // keyed by Inner class name
	order      []string           // Inner class names in first-seen order
	references map[string][]string // referencing class -> inner classes it mentions, in first-seen order
	seenRef    map[string]map[string]bool
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		tuples:     make(map[string]Tuple),
		references: make(map[string][]string),
		seenRef:    make(map[string]map[string]bool),
	}
}

// Record registers an IC tuple observed on a class (its own nested-class declaration, or one
// surfaced by a referenced class's name containing "$"). Re-recording the same Inner name is a
// no-op: the first tuple recorded for a given inner class wins.
func (t *Tracker) Record(tuple Tuple) {
	if _, exists := t.tuples[tuple.Inner]; exists {
		return
	}

	t.tuples[tuple.Inner] = tuple
	t.order = append(t.order, tuple.Inner)
}

// Tuple returns the tuple recorded for inner, and whether one was recorded at all.
func (t *Tracker) Tuple(inner string) (Tuple, bool) {
	tup, ok := t.tuples[inner]

	return tup, ok
}

// AddReference records that class refers to a CP Class entry named target. It is a no-op unless
// target names an inner class (contains "$") other than class itself.
func (t *Tracker) AddReference(class, target string) {
	if class == target || !strings.Contains(target, "$") {
		return
	}

	if IsEnclosingPrefix(class, target) {
		return
	}

	if t.seenRef[class] == nil {
		t.seenRef[class] = make(map[string]bool)
	}
	if t.seenRef[class][target] {
		return
	}

	t.seenRef[class][target] = true
	t.references[class] = append(t.references[class], target)
}

// References returns, in first-seen order, the inner classes that class referenced via AddReference.
func (t *Tracker) References(class string) []string {
	return t.references[class]
}

// IsEnclosingPrefix reports whether target's class name is class itself followed by one or more
// "$<segment>" suffixes that make target a syntactically nested class of class — i.e. class is a
// proper name-prefix of target at a "$" boundary. This is the "nor an enclosing-scope proper
// prefix" exception from the inner-class-reference rule: a class referencing its own nested class
// by simple containment is not considered an external reference.
func IsEnclosingPrefix(class, target string) bool {
	if !strings.HasPrefix(target, class) {
		return false
	}

	rest := target[len(class):]

	return strings.HasPrefix(rest, "$")
}

// Predictable derives the (outer, name) pair implied by inner's own name under the "$" convention:
// the outer class is everything before the last "$", and the inner name is the trailing segment
// after it. Anonymous classes
// (trailing segment is all digits) have no predictable name and report ok=false.
func Predictable(inner string) (outer, name string, ok bool) {
	idx := strings.LastIndex(inner, "$")
	if idx < 0 {
		return "", "", false
	}

	outer = inner[:idx]
	name = inner[idx+1:]

	if name == "" || isAllDigits(name) {
		return outer, "", false
	}

	return outer, name, true
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return len(s) > 0
}

// NeedsExplicitEntry reports whether tuple's outer/name must be written out as an explicit pair
// rather than left for the reader to derive from the "$" convention: true whenever tuple.Explicit()
// is set, or the tuple's recorded Outer/Name disagree with what Predictable derives from Inner.
func NeedsExplicitEntry(tuple Tuple) bool {
	if tuple.Explicit() {
		return true
	}

	predOuter, predName, ok := Predictable(tuple.Inner)
	if !ok {
		return tuple.Outer != "" || tuple.Name != ""
	}

	return tuple.Outer != predOuter || tuple.Name != predName
}

// LocalEntries returns, for referencer, the subset of its AddReference'd inner classes whose
// tuple is known, non-anonymous (predictable or explicit, i.e. not a bare anonymous local class)
// and not implied by the outer's own default inner list — i.e. the entries the shredder must
// write into referencer's local InnerClasses attribute (class_flags bit 23), in the order they
// were first referenced.
func (t *Tracker) LocalEntries(referencer string) []Tuple {
	var out []Tuple

	for _, inner := range t.references[referencer] {
		tup, ok := t.tuples[inner]
		if !ok {
			// Referenced but never declared in this segment: still an inner class by name
			// shape, so synthesize a predictable tuple for it.
			outer, name, predOK := Predictable(inner)
			if !predOK {
				continue // anonymous class with no declared tuple: nothing to name it by
			}
			tup = Tuple{Inner: inner, Outer: outer, Name: name}
		}

		if _, _, predOK := Predictable(tup.Inner); !predOK && !tup.Explicit() {
			continue // anonymous, no explicit tuple recorded: omit
		}

		if tup.Outer == referencer {
			continue // implied by the outer's own default inner list, not a cross-class reference
		}

		out = append(out, tup)
	}

	return out
}

// AllTuples returns every tuple recorded so far, in first-seen order.
func (t *Tracker) AllTuples() []Tuple {
	out := make([]Tuple, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.tuples[name])
	}

	return out
}

// Reset clears all tracked tuples and references, allowing the Tracker to be reused across
// segments.
func (t *Tracker) Reset() {
	for k := range t.tuples {
		delete(t.tuples, k)
	}
	t.order = t.order[:0]
	for k := range t.references {
		delete(t.references, k)
	}
	for k := range t.seenRef {
		delete(t.seenRef, k)
	}
}
