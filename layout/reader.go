package layout

import (
	"fmt"

	"github.com/pack200/packer/errs"
)

// Reader streams an attribute instance's raw payload through a parsed Layout, routing each
// Integral and Reference element's value into its own per-element band.
type Reader struct {
	data []byte
	pos  int

	previousPValue int64

	bands map[*Element][]int64
}

// NewReader returns a Reader over data, ready to Execute a Layout against it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, bands: make(map[*Element][]int64)}
}

// Reset rewinds the reader onto a new attribute instance's payload bytes, preserving every band
// accumulated so far. Reusing one Reader across every instance of a repeated attribute is how
// successive occurrences append onto the same per-element bands in encounter order (§4.5), rather
// than each instance starting its own disconnected set of bands.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.pos = 0
	r.previousPValue = 0
}

// Band returns the values accumulated for el so far.
func (r *Reader) Band(el *Element) []int64 { return r.bands[el] }

// Execute runs every element of l against the reader's remaining input in order.
func (r *Reader) Execute(l *Layout) error {
	for _, el := range l.Elements {
		if err := r.executeElement(el); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reader) executeElement(el *Element) error {
	switch el.Kind {
	case KindIntegral:
		return r.executeIntegral(el)
	case KindReference:
		return r.executeReference(el)
	case KindReplication:
		return r.executeReplication(el)
	case KindUnion:
		return r.executeUnion(el)
	case KindCall:
		return r.executeCall(el)
	default:
		return fmt.Errorf("layout: unknown element kind %d", el.Kind)
	}
}

func (r *Reader) executeIntegral(el *Element) error {
	v, err := r.readUint(el.UintType)
	if err != nil {
		return err
	}

	switch el.Modifier {
	case 'P':
		r.previousPValue = v
	case 'O':
		v += r.previousPValue
	}

	r.bands[el] = append(r.bands[el], v)

	return nil
}

func (r *Reader) executeReference(el *Element) error {
	v, err := r.readUint('I')
	if err != nil {
		return err
	}

	r.bands[el] = append(r.bands[el], v)

	return nil
}

func (r *Reader) executeReplication(el *Element) error {
	count, err := r.readUint(el.CountType)
	if err != nil {
		return err
	}

	for i := int64(0); i < count; i++ {
		if err := r.Execute(el.Body); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reader) executeUnion(el *Element) error {
	tag, err := r.readUint(el.UnionType)
	if err != nil {
		return err
	}

	body := el.Default
	for _, uc := range el.Cases {
		for _, v := range uc.Values {
			if v == tag {
				body = uc.Body

				break
			}
		}
	}

	if body == nil {
		return nil
	}

	return r.Execute(body)
}

func (r *Reader) executeCall(el *Element) error {
	if el.Target == nil {
		return fmt.Errorf("layout: call element has no resolved target: %w", errs.ErrNoCallableTarget)
	}

	if el.CallIndex < 0 {
		el.Target.BackCallCount++
	}

	return r.Execute(el.Target.Layout)
}

func (r *Reader) readUint(uintType byte) (int64, error) {
	var width int

	switch uintType {
	case 'V':
		return 0, nil
	case 'B':
		width = 1
	case 'H':
		width = 2
	case 'I':
		width = 4
	default:
		return 0, fmt.Errorf("layout: unknown uint type %q", uintType)
	}

	if r.pos+width > len(r.data) {
		return 0, fmt.Errorf("layout: %w", errs.ErrTruncatedInput)
	}

	var v int64
	for i := 0; i < width; i++ {
		v = v<<8 | int64(r.data[r.pos+i])
	}
	r.pos += width

	return v, nil
}
