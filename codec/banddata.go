package codec

import "math"

// BandData summarizes the value distribution of one band, gathered in a single pass before the
// Selector picks a codec. Every field is derived directly from the band's logical values; nothing
// here depends on which codec eventually gets chosen.
type BandData struct {
	Values []int64

	Smallest int64
	Largest  int64

	// Deltas holds values[i]-values[i-1] for i>0. Empty for bands of length <= 1.
	Deltas []int64

	// AscendingFraction is the fraction of consecutive pairs where values[i] >= values[i-1].
	AscendingFraction float64
	// SmallDeltaFraction is the fraction of deltas whose absolute value fits in one BHSD byte
	// at the default H=64 radix (i.e. abs(delta) < 64). High values favor a delta codec.
	SmallDeltaFraction float64
	// MeanAbsValue is the mean of abs(values).
	MeanAbsValue float64
	// MeanAbsDelta is the mean of abs(deltas).
	MeanAbsDelta float64
}

// Measure computes a BandData summary for values. An empty slice yields a zero-value BandData
// with Smallest/Largest left at 0.
func Measure(values []int64) BandData {
	bd := BandData{Values: values}
	if len(values) == 0 {
		return bd
	}

	bd.Smallest, bd.Largest = values[0], values[0]

	var sumAbsValue float64
	for _, v := range values {
		if v < bd.Smallest {
			bd.Smallest = v
		}
		if v > bd.Largest {
			bd.Largest = v
		}
		sumAbsValue += math.Abs(float64(v))
	}
	bd.MeanAbsValue = sumAbsValue / float64(len(values))

	if len(values) < 2 {
		return bd
	}

	bd.Deltas = make([]int64, len(values)-1)
	var ascending, smallDelta int
	var sumAbsDelta float64

	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		bd.Deltas[i-1] = d

		if d >= 0 {
			ascending++
		}
		if abs64(d) < 64 {
			smallDelta++
		}
		sumAbsDelta += math.Abs(float64(d))
	}

	n := float64(len(bd.Deltas))
	bd.AscendingFraction = float64(ascending) / n
	bd.SmallDeltaFraction = float64(smallDelta) / n
	bd.MeanAbsDelta = sumAbsDelta / n

	return bd
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
