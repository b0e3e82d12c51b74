package codec

import (
	"bytes"
	"fmt"
)

// Run is a composite codec that encodes the first K elements of a band with one codec and the
// remainder with a second. It exists for bands whose value distribution genuinely changes partway
// through — the classic case is a band whose first few entries are header-like sentinels and
// whose tail is homogeneous data better served by a different BHSD shape.
//
// A Run's second codec may itself be a *Run, letting the selector express more than one split
// point when the band's statistics call for it.
type Run struct {
	K int
	A Encoding
	B Encoding
}

// Encoding is satisfied by *BHSD, *Run, and *Population: anything the selector can hand a slice
// of values and get back an encoded byte stream.
type Encoding interface {
	EncodeAll(values []int64, seed int64) ([]byte, error)
	DecodeAll(data []byte, count int, seed int64) ([]int64, error)
}

var (
	_ Encoding = (*BHSD)(nil)
	_ Encoding = (*Run)(nil)
	_ Encoding = (*Population)(nil)
)

// NewRun builds a Run codec. K must be positive; a Run covering an entire band with no second
// segment is just the underlying codec and doesn't need this wrapper.
func NewRun(k int, a, b Encoding) (*Run, error) {
	if k <= 0 {
		return nil, fmt.Errorf("codec: run length K must be positive, got %d", k)
	}

	return &Run{K: k, A: a, B: b}, nil
}

func (r *Run) EncodeAll(values []int64, seed int64) ([]byte, error) {
	split := min(r.K, len(values))

	head, err := r.A.EncodeAll(values[:split], seed)
	if err != nil {
		return nil, fmt.Errorf("codec: run head: %w", err)
	}

	if split == len(values) {
		return head, nil
	}

	tailSeed := values[split-1]

	tail, err := r.B.EncodeAll(values[split:], tailSeed)
	if err != nil {
		return nil, fmt.Errorf("codec: run tail: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(head)
	buf.Write(tail)

	return buf.Bytes(), nil
}

func (r *Run) DecodeAll(data []byte, count int, seed int64) ([]int64, error) {
	split := min(r.K, count)

	head, headLen, err := decodeAllConsumed(r.A, data, split, seed)
	if err != nil {
		return nil, fmt.Errorf("codec: run head: %w", err)
	}

	out := make([]int64, 0, count)
	out = append(out, head...)

	if split == count {
		return out, nil
	}

	tailSeed := head[len(head)-1]

	tail, err := r.B.DecodeAll(data[headLen:], count-split, tailSeed)
	if err != nil {
		return nil, fmt.Errorf("codec: run tail: %w", err)
	}

	return append(out, tail...), nil
}

// decodeAllConsumed decodes count values from data using enc and also reports how many bytes of
// data were consumed, which a plain Encoding.DecodeAll doesn't expose. A BHSD value takes anywhere
// from 1 to B bytes and Run/Population segments have no fixed width either, so the byte offset
// must be computed by re-deriving it from a scratch encode of the decoded values.
func decodeAllConsumed(enc Encoding, data []byte, count int, seed int64) ([]int64, int, error) {
	values, err := enc.DecodeAll(data, count, seed)
	if err != nil {
		return nil, 0, err
	}

	reencoded, err := enc.EncodeAll(values, seed)
	if err != nil {
		return nil, 0, err
	}

	return values, len(reencoded), nil
}
