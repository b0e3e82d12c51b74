package layout

import (
	"fmt"
	"strconv"

	"github.com/pack200/packer/errs"
)

// Parse parses a full attribute-layout string, returning the top-level Layout and an Arena in
// which that layout is the only Callable (id 0).
//
// Parse does not resolve Call targets; call ResolveCalls with the returned arena. A bracketed
// "[...]" callable body is not accepted as an element (it is a layout syntax error), so a layout
// string cannot declare further callables, and a Call that targets any callable other than id 0
// fails to resolve.
func Parse(src string) (*Layout, *Arena, error) {
	p := &parser{src: src}
	arena := NewArena()
	p.arena = arena

	top, err := p.parseLayout()
	if err != nil {
		return nil, nil, err
	}
	arena.New(top)

	if p.pos != len(p.src) {
		return nil, nil, fmt.Errorf("layout: unexpected trailing input at %d in %q: %w", p.pos, src, errs.ErrLayoutSyntax)
	}

	return top, arena, nil
}

type parser struct {
	src   string
	pos   int
	arena *Arena
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}

	return p.src[p.pos], true
}

func (p *parser) advance() byte {
	b := p.src[p.pos]
	p.pos++

	return b
}

func (p *parser) expect(b byte) error {
	c, ok := p.peek()
	if !ok || c != b {
		return fmt.Errorf("layout: expected %q at %d in %q: %w", b, p.pos, p.src, errs.ErrLayoutSyntax)
	}
	p.pos++

	return nil
}

func isUintLetter(b byte) bool { return b == 'B' || b == 'H' || b == 'I' || b == 'V' }

// parseLayout parses a sequence of elements up to a closing ']' or end of input, NOT consuming
// the closing bracket.
func (p *parser) parseLayout() (*Layout, error) {
	l := &Layout{}

	for {
		c, ok := p.peek()
		if !ok || c == ']' {
			return l, nil
		}

		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		l.Elements = append(l.Elements, el)
	}
}

func (p *parser) parseElement() (*Element, error) {
	c, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("layout: unexpected end of input: %w", errs.ErrLayoutSyntax)
	}

	switch {
	case c == '(':
		return p.parseCall()
	case c == 'R' || c == 'K':
		return p.parseReference()
	case c == 'N':
		return p.parseReplication()
	case c == 'T':
		return p.parseUnion()
	case c == 'S' || c == 'F' || c == 'P' || c == 'O' || isUintLetter(c):
		return p.parseIntegral()
	default:
		return nil, fmt.Errorf("layout: unexpected character %q at %d in %q: %w", c, p.pos, p.src, errs.ErrLayoutSyntax)
	}
}

func (p *parser) parseIntegral() (*Element, error) {
	var modifier byte
	signed := false

	c := p.advance()
	switch c {
	case 'S':
		modifier = 'S'
	case 'F':
		modifier = 'F'
	case 'P':
		modifier = 'P'
		if next, ok := p.peek(); ok && next == 'O' {
			p.advance()
			signed = true
		}
	case 'O':
		modifier = 'O'
		if next, ok := p.peek(); ok && next == 'S' {
			p.advance()
			signed = true
		}
	default:
		// A bare uint letter with no modifier: push it back by treating c itself as the uint type.
		return &Element{Kind: KindIntegral, UintType: c}, nil
	}

	uintType, ok := p.peek()
	if !ok || !isUintLetter(uintType) {
		return nil, fmt.Errorf("layout: expected uint type after modifier %q at %d in %q: %w", modifier, p.pos, p.src, errs.ErrLayoutSyntax)
	}
	p.advance()

	return &Element{Kind: KindIntegral, Modifier: modifier, UintType: uintType, Signed: signed}, nil
}

func (p *parser) parseReference() (*Element, error) {
	refKind := p.advance() // 'R' or 'K'

	var types []byte
	for {
		c, ok := p.peek()
		if !ok || c == 'N' || !isLetter(c) {
			break
		}
		types = append(types, c)
		p.advance()
	}

	nullable := false
	if c, ok := p.peek(); ok && c == 'N' {
		nullable = true
		p.advance()
	}

	return &Element{
		Kind:     KindReference,
		RefKind:  refKind,
		RefTypes: string(types),
		Nullable: nullable,
	}, nil
}

func isLetter(b byte) bool { return b >= 'A' && b <= 'Z' }

func (p *parser) parseReplication() (*Element, error) {
	p.advance() // 'N'

	uintType, ok := p.peek()
	if !ok || !isUintLetter(uintType) {
		return nil, fmt.Errorf("layout: expected uint type after N at %d in %q: %w", p.pos, p.src, errs.ErrLayoutSyntax)
	}
	p.advance()

	if err := p.expect('['); err != nil {
		return nil, err
	}

	body, err := p.parseLayout()
	if err != nil {
		return nil, err
	}

	if err := p.expect(']'); err != nil {
		return nil, err
	}

	return &Element{Kind: KindReplication, CountType: uintType, Body: body}, nil
}

func (p *parser) parseUnion() (*Element, error) {
	p.advance() // 'T'

	unionType, ok := p.peek()
	if !ok || !isUintLetter(unionType) {
		return nil, fmt.Errorf("layout: expected uint type after T at %d in %q: %w", p.pos, p.src, errs.ErrLayoutSyntax)
	}
	p.advance()

	el := &Element{Kind: KindUnion, UnionType: unionType}

	for {
		if err := p.expect('('); err != nil {
			return nil, err
		}

		var values []int64
		for {
			c, ok := p.peek()
			if !ok {
				return nil, fmt.Errorf("layout: unterminated union case at %d in %q: %w", p.pos, p.src, errs.ErrLayoutSyntax)
			}
			if c == ')' {
				break
			}
			if c == ',' {
				p.advance()

				continue
			}

			n, err := p.parseSignedInt()
			if err != nil {
				return nil, err
			}
			values = append(values, n)
		}

		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if err := p.expect('['); err != nil {
			return nil, err
		}

		body, err := p.parseLayout()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}

		if len(values) == 0 {
			el.Default = body

			return el, nil
		}

		el.Cases = append(el.Cases, UnionCase{Values: values, Body: body})
	}
}

func (p *parser) parseCall() (*Element, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}

	n, err := p.parseSignedInt()
	if err != nil {
		return nil, err
	}

	if err := p.expect(')'); err != nil {
		return nil, err
	}

	return &Element{Kind: KindCall, CallIndex: int(n)}, nil
}

func (p *parser) parseSignedInt() (int64, error) {
	start := p.pos
	if c, ok := p.peek(); ok && c == '-' {
		p.advance()
	}

	for {
		c, ok := p.peek()
		if !ok || c < '0' || c > '9' {
			break
		}
		p.advance()
	}

	if p.pos == start {
		return 0, fmt.Errorf("layout: expected number at %d in %q: %w", p.pos, p.src, errs.ErrLayoutSyntax)
	}

	n, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("layout: malformed number %q: %w", p.src[start:p.pos], errs.ErrLayoutSyntax)
	}

	return n, nil
}

// ResolveCalls walks every Call element reachable from the callables in arena and links it to its
// Target, per the rule that index 0 means the enclosing callable, positive indices skip that many
// subsequent callables, and negative indices skip backward — marking the target
// BackwardsCallable when reached that way.
func ResolveCalls(arena *Arena) error {
	callables := arena.Callables()

	for i, c := range callables {
		if err := resolveCallsIn(c.Layout, i, callables); err != nil {
			return err
		}
	}

	backIdx := 0
	for _, c := range callables {
		if c.BackwardsCallable {
			c.BackwardsCallableIndex = backIdx
			backIdx++
		}
	}

	return nil
}

func resolveCallsIn(l *Layout, selfIdx int, callables []*Callable) error {
	for _, el := range l.Elements {
		switch el.Kind {
		case KindCall:
			targetIdx := selfIdx + el.CallIndex
			if targetIdx < 0 || targetIdx >= len(callables) {
				return fmt.Errorf("layout: call index %d from callable %d out of range: %w", el.CallIndex, selfIdx, errs.ErrNoCallableTarget)
			}
			el.Target = callables[targetIdx]
			if el.CallIndex < 0 {
				el.Target.BackwardsCallable = true
			}
		case KindReplication:
			if err := resolveCallsIn(el.Body, selfIdx, callables); err != nil {
				return err
			}
		case KindUnion:
			for _, uc := range el.Cases {
				if err := resolveCallsIn(uc.Body, selfIdx, callables); err != nil {
					return err
				}
			}
			if el.Default != nil {
				if err := resolveCallsIn(el.Default, selfIdx, callables); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
