package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pack200/packer/errs"
)

// BHSD is a variable-length integer codec parameterized by four values, following the naming of
// the Pack200 wire format:
//
//   - B: the maximum number of bytes a single value may occupy, 1..5.
//   - H: the radix used for continuation bytes, 1..256. Bytes below L = 256-H terminate a value;
//     bytes at or above L signal that another byte follows.
//   - S: the signedness treatment, 0..2. 0 means unsigned. 1 and 2 select progressively wider
//     "folded" signed ranges, used by bands whose values cluster near zero in both directions
//     (e.g. bytecode branch offsets).
//   - D: the delta flag. When set, successive decoded values are deltas from the previous value
//     rather than absolute values, letting monotonic or slowly-varying bands encode small deltas.
type BHSD struct {
	B, H, S, D int

	powers        []uint64 // powers[i] = H^i, precomputed for i in [0,B]
	smallest      int64
	largest       int64
	cardinality   uint64
}

// NewBHSD constructs a BHSD codec, validating the four parameters against the ranges and
// structural invariants the wire format allows: B in [1,5], H in [1,256], S in [0,2], D in
// {0,1}, B==1 implies H==256 (a single-byte codec has no continuation bit, so it must use the
// full byte range), and H==256 implies B!=5 (a 5-byte codec always reserves its continuation
// bit, so it never uses the full 256 radix).
func NewBHSD(b, h, s, d int) (*BHSD, error) {
	if b < 1 || b > 5 {
		return nil, fmt.Errorf("codec: B must be in [1,5], got %d: %w", b, errs.ErrLayoutSyntax)
	}
	if h < 1 || h > 256 {
		return nil, fmt.Errorf("codec: H must be in [1,256], got %d: %w", h, errs.ErrLayoutSyntax)
	}
	if s < 0 || s > 2 {
		return nil, fmt.Errorf("codec: S must be in [0,2], got %d: %w", s, errs.ErrLayoutSyntax)
	}
	if d != 0 && d != 1 {
		return nil, fmt.Errorf("codec: D must be 0 or 1, got %d: %w", d, errs.ErrLayoutSyntax)
	}
	if b == 1 && h != 256 {
		return nil, fmt.Errorf("codec: B==1 requires H==256, got H=%d: %w", h, errs.ErrLayoutSyntax)
	}
	if h == 256 && b == 5 {
		return nil, fmt.Errorf("codec: H==256 is invalid with B==5: %w", errs.ErrLayoutSyntax)
	}

	c := &BHSD{B: b, H: h, S: s, D: d}
	c.powers = make([]uint64, b+1)
	c.powers[0] = 1
	for i := 1; i <= b; i++ {
		c.powers[i] = c.powers[i-1] * uint64(h)
	}
	c.cardinality = c.powers[b]
	c.smallest, c.largest = signedRange(c.cardinality, s)

	return c, nil
}

// String renders the codec in the conventional "(B,H,S,D)" notation, e.g. "(5,64,0)" for
// UNSIGNED5. The D term is omitted when zero, matching how the published codec table names
// non-delta codecs.
func (c *BHSD) String() string {
	if c.D == 0 {
		return fmt.Sprintf("(%d,%d,%d)", c.B, c.H, c.S)
	}

	return fmt.Sprintf("(%d,%d,%d,%d)", c.B, c.H, c.S, c.D)
}

// Cardinality returns the number of distinct values this codec can represent, H^B.
func (c *BHSD) Cardinality() uint64 { return c.cardinality }

// Delta reports whether successive decoded values are deltas from the previous value.
func (c *BHSD) Delta() bool { return c.D == 1 }

// Range returns the smallest and largest absolute value this codec can represent, after
// accounting for its signedness treatment.
func (c *BHSD) Range() (smallest, largest int64) { return c.smallest, c.largest }

// signedRange derives the representable value range for cardinality N under signedness mode s,
// i.e. the values fold maps into [0, N).
//
//   - s == 0: unsigned, range is [0, N-1].
//   - s == 1: values are folded so that small positive and small negative values interleave,
//     evens map to >=0 and odds to <0 (the "signed" folding used by BCI and branch offsets);
//     range is [-N/2, N/2-1].
//   - s == 2: three of every four codes map to >=0 and the fourth to <0, so the negative tail is
//     a third as long as the positive one; range is [-N/4, 3N/4-1].
func signedRange(n uint64, s int) (smallest, largest int64) {
	switch s {
	case 0:
		return 0, int64(n - 1) //nolint:gosec
	case 1:
		return -int64(n / 2), int64(n/2) - 1 //nolint:gosec
	default:
		return -int64(n / 4), int64(3*(n/4)) - 1 //nolint:gosec
	}
}

// fold maps a signed logical value into the unsigned wire representation, following the Pack200
// signed-folding scheme: negative values are mapped to odd unsigned codes and non-negative values
// to even ones (for S==1), or to codes 4k+3 and the other three of every four codes (for S==2), so that small
// magnitudes in either direction end up as small unsigned codes. Unsigned (S==0) delta codecs can
// still see a negative logical value (a decreasing band); those wrap modulo the codec's
// cardinality rather than being rejected outright.
func (c *BHSD) fold(v int64) uint64 {
	if c.S == 0 {
		if v < 0 {
			return uint64(v + int64(min(c.cardinality, 1<<32))) //nolint:gosec
		}

		return uint64(v) //nolint:gosec
	}

	if v < 0 {
		return uint64((-v << uint(c.S)) - 1) //nolint:gosec
	}
	if c.S == 1 {
		return uint64(v << 1) //nolint:gosec
	}

	return uint64(v + (v-v%3)/3) //nolint:gosec
}

// unfold reverses fold.
func (c *BHSD) unfold(u uint64) int64 {
	if c.S == 0 {
		return int64(u) //nolint:gosec
	}

	z := int64(u) //nolint:gosec
	mask := int64((1 << uint(c.S)) - 1)

	if z&mask == mask {
		return (z >> uint(c.S)) ^ -1
	}

	return z - (z >> uint(c.S))
}

// EncodeValue writes a single logical value, applying delta-of-previous transformation first when
// the codec is a delta codec. last is the previously decoded/encoded logical value and is ignored
// when D == 0.
func (c *BHSD) EncodeValue(w *bytes.Buffer, v, last int64) error {
	toEncode := v
	if c.D == 1 {
		toEncode = v - last
	}

	u := c.fold(toEncode)
	if u >= c.cardinality {
		return fmt.Errorf("codec %s: value %d out of range: %w", c, v, errs.ErrOverflowInCodec)
	}

	l := uint64(256 - c.H) //nolint:gosec
	for i := 0; i < c.B; i++ {
		if i == c.B-1 {
			if err := w.WriteByte(byte(u)); err != nil {
				return err
			}

			break
		}

		b := u % uint64(c.H)
		u /= uint64(c.H)

		if u == 0 && b < l {
			if err := w.WriteByte(byte(b)); err != nil {
				return err
			}

			break
		}

		if err := w.WriteByte(byte(b + l)); err != nil {
			return err
		}
	}

	return nil
}

// DecodeValue reads a single logical value from r, reversing EncodeValue.
func (c *BHSD) DecodeValue(r io.ByteReader, last int64) (int64, error) {
	l := byte(256 - c.H) //nolint:gosec

	var u uint64
	for i := 0; i < c.B; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("codec %s: %w", c, errs.ErrTruncatedCodec)
		}

		if i == c.B-1 {
			u += uint64(b) * c.powers[i]

			break
		}

		if b < l {
			u += uint64(b) * c.powers[i]

			break
		}

		u += uint64(b-l) * c.powers[i]
	}

	v := c.unfold(u)
	if c.D == 1 {
		v += last
	}

	return v, nil
}

// EncodeAll encodes every value in values, returning the concatenated wire bytes. seed is the
// logical "previous value" fed to the first element when the codec is a delta codec (conventionally
// 0).
func (c *BHSD) EncodeAll(values []int64, seed int64) ([]byte, error) {
	var buf bytes.Buffer
	last := seed

	for _, v := range values {
		if err := c.EncodeValue(&buf, v, last); err != nil {
			return nil, err
		}

		last = v
	}

	return buf.Bytes(), nil
}

// DecodeAll decodes exactly count values from data.
func (c *BHSD) DecodeAll(data []byte, count int, seed int64) ([]int64, error) {
	r := bytes.NewReader(data)
	out := make([]int64, 0, count)
	last := seed

	for i := 0; i < count; i++ {
		v, err := c.DecodeValue(r, last)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
		last = v
	}

	return out, nil
}
