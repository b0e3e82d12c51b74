package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Population is a composite codec for bands dominated by one "favoured" value with a long tail of
// otherwise unrelated values — the constant pool's CONSTANT_Utf8 tag band is the textbook case,
// where one tag value accounts for the overwhelming majority of entries.
//
// Each element of the band is represented by a token: token 0 means "this element is the favoured
// value", and a nonzero token n means "this element is the nth distinct unfavoured value" (1-indexed,
// in order of first appearance). The favoured value and each distinct unfavoured value are stored
// once, so repetition of the favoured value costs one token byte instead of a full-width value.
type Population struct {
	TokenCodec     *BHSD
	UnfavouredCodec *BHSD
}

var _ Encoding = (*Population)(nil)

// NewPopulation builds a Population codec from the token and unfavoured-value sub-codecs.
func NewPopulation(token, unfavoured *BHSD) *Population {
	return &Population{TokenCodec: token, UnfavouredCodec: unfavoured}
}

// EncodeAll encodes values, deriving the favoured value as the most frequent element. seed is
// accepted for Encoding symmetry but unused: Population never delta-encodes across its own
// boundary (its sub-codecs may still be delta codecs internally).
func (p *Population) EncodeAll(values []int64, _ int64) ([]byte, error) {
	favoured, unfavouredOrder, index := classifyPopulation(values)

	tokens := make([]int64, len(values))
	for i, v := range values {
		if v == favoured {
			tokens[i] = 0
		} else {
			tokens[i] = int64(index[v])
		}
	}

	var buf bytes.Buffer

	if err := p.TokenCodec.EncodeValue(&buf, favoured, 0); err != nil {
		return nil, fmt.Errorf("codec: population favoured value: %w", err)
	}

	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(unfavouredOrder)))
	buf.Write(lenBuf[:n])

	unfavouredBytes, err := p.UnfavouredCodec.EncodeAll(unfavouredOrder, 0)
	if err != nil {
		return nil, fmt.Errorf("codec: population unfavoured values: %w", err)
	}
	buf.Write(unfavouredBytes)

	tokenBytes, err := p.TokenCodec.EncodeAll(tokens, 0)
	if err != nil {
		return nil, fmt.Errorf("codec: population tokens: %w", err)
	}
	buf.Write(tokenBytes)

	return buf.Bytes(), nil
}

// DecodeAll reverses EncodeAll, decoding exactly count band elements from data.
func (p *Population) DecodeAll(data []byte, count int, _ int64) ([]int64, error) {
	r := bytes.NewReader(data)

	favoured, err := p.TokenCodec.DecodeValue(r, 0)
	if err != nil {
		return nil, fmt.Errorf("codec: population favoured value: %w", err)
	}

	unfavouredCount, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("codec: population unfavoured count: %w", err)
	}

	unfavoured := make([]int64, 0, unfavouredCount)
	for i := uint64(0); i < unfavouredCount; i++ {
		v, err := p.UnfavouredCodec.DecodeValue(r, 0)
		if err != nil {
			return nil, fmt.Errorf("codec: population unfavoured value %d: %w", i, err)
		}
		unfavoured = append(unfavoured, v)
	}

	out := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		token, err := p.TokenCodec.DecodeValue(r, 0)
		if err != nil {
			return nil, fmt.Errorf("codec: population token %d: %w", i, err)
		}

		if token == 0 {
			out = append(out, favoured)

			continue
		}

		if int(token) > len(unfavoured) {
			return nil, fmt.Errorf("codec: population token %d references out-of-range unfavoured index", token)
		}

		out = append(out, unfavoured[token-1])
	}

	return out, nil
}

// classifyPopulation finds the most frequent value (the favoured value) and the distinct
// unfavoured values in order of first appearance, along with a 1-indexed lookup from unfavoured
// value to its position in that order.
func classifyPopulation(values []int64) (favoured int64, unfavouredOrder []int64, index map[int64]int) {
	counts := make(map[int64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best, bestCount := int64(0), -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}

	favoured = best
	index = make(map[int64]int)
	unfavouredOrder = make([]int64, 0, len(counts)-1)

	for _, v := range values {
		if v == favoured {
			continue
		}
		if _, seen := index[v]; !seen {
			unfavouredOrder = append(unfavouredOrder, v)
			index[v] = len(unfavouredOrder)
		}
	}

	return favoured, unfavouredOrder, index
}
