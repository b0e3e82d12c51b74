package shredder

import (
	"strconv"

	"github.com/pack200/packer/classfile"
)

// LabelTable accumulates (originalByteOffset -> instructionIndex) mappings for one method body and
// every Label placeholder recorded against line-number, local-variable, local-variable-type,
// exception-handler and custom-attribute bands while the method's bytecode is still being walked.
// Once the last instruction has been seen, Resolve replaces every placeholder with its final
// instruction index (absolute references) or an instruction-index difference (offset references,
// the P/PO/O/OS integrals).
type LabelTable struct {
	instructionIndex map[int]int // label id -> instruction index, filled in as instructions are visited
	nextIndex        int

	absolute []absoluteRef
	offsets  []offsetRef
}

type absoluteRef struct {
	label classfile.Label
	slot  *int64
}

type offsetRef struct {
	from, to classfile.Label
	slot     *int64
}

// NewLabelTable returns an empty LabelTable for one method.
func NewLabelTable() *LabelTable {
	return &LabelTable{instructionIndex: make(map[int]int)}
}

// Mark records that label occurs at the instruction about to be visited. It does not advance the
// instruction counter: call Mark once per VisitLabel, and Advance once per real instruction
// callback that consumes an instruction slot.
func (t *LabelTable) Mark(label classfile.Label) {
	t.instructionIndex[label.ID()] = t.nextIndex
}

// Advance records that one more bytecode instruction has been visited.
func (t *LabelTable) Advance() {
	t.nextIndex++
}

// TrackAbsolute registers slot to receive label's final instruction index once Resolve runs (used
// for P-modifier integrals and other absolute bytecode-index references).
func (t *LabelTable) TrackAbsolute(label classfile.Label, slot *int64) {
	t.absolute = append(t.absolute, absoluteRef{label: label, slot: slot})
}

// TrackOffset registers slot to receive (instructionIndex(to) - instructionIndex(from)) once
// Resolve runs (used for O-modifier integrals: bytecode offsets relative to the last P value).
func (t *LabelTable) TrackOffset(from, to classfile.Label, slot *int64) {
	t.offsets = append(t.offsets, offsetRef{from: from, to: to, slot: slot})
}

// Resolve fills in every tracked slot. It must run after the method's last instruction has been
// visited (VisitMaxs/VisitEnd).
func (t *LabelTable) Resolve() error {
	for _, ref := range t.absolute {
		idx, ok := t.instructionIndex[ref.label.ID()]
		if !ok {
			return errUnresolvedLabel(ref.label)
		}
		*ref.slot = int64(idx)
	}

	for _, ref := range t.offsets {
		fromIdx, ok := t.instructionIndex[ref.from.ID()]
		if !ok {
			return errUnresolvedLabel(ref.from)
		}
		toIdx, ok := t.instructionIndex[ref.to.ID()]
		if !ok {
			return errUnresolvedLabel(ref.to)
		}
		*ref.slot = int64(toIdx - fromIdx)
	}

	return nil
}

func errUnresolvedLabel(l classfile.Label) error {
	return &unresolvedLabelError{id: l.ID()}
}

type unresolvedLabelError struct{ id int }

func (e *unresolvedLabelError) Error() string {
	return "shredder: label " + strconv.Itoa(e.id) + " never visited"
}
