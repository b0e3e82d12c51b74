package layout

// ElementKind identifies which grammar production an Element was parsed from.
type ElementKind int

const (
	KindIntegral ElementKind = iota
	KindReference
	KindReplication
	KindUnion
	KindCall
)

// Element is one node of a parsed layout tree.
type Element struct {
	Kind ElementKind

	// Integral fields. Modifier is one of 0 (plain), 'S' (signed), 'F' (flag), 'P' (bytecode
	// index label), 'O' (bytecode offset from the last P), or the two-letter forms "PO"/"OS"
	// collapsed into Modifier='P'/'O' with Signed set.
	Modifier byte
	UintType byte // 'B', 'H', 'I', or 'V' (zero-width)
	Signed   bool

	// Reference fields.
	RefKind  byte // 'R' (required) or 'K' (optional/predefined constant)
	RefTypes string
	Nullable bool

	// Replication fields.
	CountType byte
	Body      *Layout

	// Union fields.
	UnionType byte
	Cases     []UnionCase
	Default   *Layout

	// Call fields. CallIndex is the raw signed index from the grammar: 0 means "the enclosing
	// callable", positive skips that many callables forward, negative skips backward. Target is
	// filled in by resolveCalls once every callable in the attribute definition has been parsed.
	CallIndex int
	Target    *Callable
}

// UnionCase is one "(v1,v2,...)[layout]" arm of a Union element.
type UnionCase struct {
	Values []int64
	Body   *Layout
}

// Layout is a sequence of Elements, the parse of a '[' ... ']' bracketed body or a whole
// attribute's top-level layout string.
type Layout struct {
	Elements []*Element
}

// Callable is a layout fragment reachable via one or more Call elements. The arena-owned,
// integer-indexed representation keeps the callable graph acyclic-at-the-storage-level even
// though the logical call graph (via CallIndex) can point backwards at an enclosing callable.
type Callable struct {
	ID     int
	Layout *Layout

	// BackwardsCallable is true once any Call element is found to target this callable via a
	// negative index.
	BackwardsCallable      bool
	BackwardsCallableIndex int

	// BackCallCount counts how many times a backwards call actually targets this callable,
	// tracked by the Reader at execution time rather than at parse time.
	BackCallCount int
}

// Arena owns every Callable parsed from one attribute definition.
type Arena struct {
	callables []*Callable
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// New creates a Callable with the given top-level layout and returns it, registering it in the
// arena under the next integer id.
func (a *Arena) New(l *Layout) *Callable {
	c := &Callable{ID: len(a.callables), Layout: l}
	a.callables = append(a.callables, c)

	return c
}

// Callables returns every callable registered in the arena, in registration order.
func (a *Arena) Callables() []*Callable {
	return a.callables
}
