package codec

import "github.com/pack200/packer/internal/sizemodel"

// thresholds maps effort (1..9) to the minimum band length worth spending selection effort on.
// Smaller bands aren't worth the specifier overhead a non-default codec would add.
var thresholds = [10]int{0: 0, 1: 256, 2: 192, 3: 128, 4: 96, 5: 64, 6: 48, 7: 32, 8: 16, 9: 8}

// refitInterval is how many new observations accumulate before the Selector refits its size
// model; refitting on every single observation would cost more than the search it's meant to
// shortcut.
const refitInterval = 8

// Selection is the result of running the Selector against one band.
type Selection struct {
	Codec       Encoding
	Encoded     []byte
	IsDefault   bool
	Specifier   int // canonical table index of Codec, or -1 if Codec is the default or a Population
}

// Selector implements the effort-driven codec search described for band encoding: given a band's
// raw values and the codec that would be used absent any search, it looks for a cheaper canonical
// codec within a budget proportional to the configured effort.
type Selector struct {
	Effort int

	lengths       []float64
	bytesPerValue []float64
	estimator     sizemodel.Estimator
}

// NewSelector builds a Selector. Effort is clamped to [1,9].
func NewSelector(effort int) *Selector {
	if effort < 1 {
		effort = 1
	}
	if effort > 9 {
		effort = 9
	}

	return &Selector{Effort: effort}
}

// observe records one band's (length, bytesPerValue) outcome from a completed full-effort search,
// refitting the size model every refitInterval new samples. Samples only come from bands that
// actually ran the family search (see Select), so the model is trained on real measured costs
// rather than on its own fast-path guesses.
func (s *Selector) observe(length int, encodedBytes int) {
	if length == 0 {
		return
	}

	s.lengths = append(s.lengths, float64(length))
	s.bytesPerValue = append(s.bytesPerValue, float64(encodedBytes)/float64(length))

	if len(s.lengths) < 2 || len(s.lengths)%refitInterval != 0 {
		return
	}

	if best, err := sizemodel.FitBest(s.lengths, s.bytesPerValue); err == nil {
		s.estimator = best
	}
}

// predictedSavingsNegligible reports whether the fitted size model already expects defaultCost to
// be within slack bytes of the best achievable bytes-per-value at this band length — if so, the
// full family search is unlikely to find anything worth its cost. Returns false (never skip) until
// enough observations have accumulated to fit a model.
func (s *Selector) predictedSavingsNegligible(length, defaultCost, slack int) bool {
	if s.estimator == nil {
		return false
	}

	predictedBytes := s.estimator.Estimate(float64(length)) * float64(length)

	return predictedBytes >= float64(defaultCost-slack)
}

// Select picks a codec for values, defaulting to defaultCodec when no cheaper alternative clears
// its overhead, or when the band is too small to bother searching. isPopulationSubBand should be
// true when values is itself a Population codec's favoured/unfavoured sub-band, to avoid the
// selector recursively trying to population-encode a sub-band.
func (s *Selector) Select(values []int64, defaultCodec *BHSD, isPopulationSubBand bool) (Selection, error) {
	defaultEncoded, err := defaultCodec.EncodeAll(values, 0)
	if err != nil {
		return Selection{}, err
	}

	asDefault := Selection{Codec: defaultCodec, Encoded: defaultEncoded, IsDefault: true, Specifier: -1}

	if len(values) < thresholds[s.Effort] {
		return asDefault, nil
	}

	// C shrinks as effort rises: higher effort is willing to chase smaller savings.
	nearMinimalSlack := 10 - s.Effort
	if len(defaultEncoded) <= len(values)+nearMinimalSlack {
		return asDefault, nil
	}

	// Low-effort fast path: skip the family search entirely when the fitted size model already
	// expects it to come back empty-handed. Effort 4+ always runs the real search, both to keep
	// finding genuine savings and to keep feeding observe() fresh measured data.
	if s.Effort <= 3 && s.predictedSavingsNegligible(len(values), len(defaultEncoded), nearMinimalSlack) {
		return asDefault, nil
	}

	bd := Measure(values)

	if bd.Smallest >= 0 && bd.Largest <= ByteCodec.largest {
		encoded, err := ByteCodec.EncodeAll(values, 0)
		if err == nil && len(encoded) < len(defaultEncoded) {
			return Selection{Codec: ByteCodec, Encoded: encoded, Specifier: mustCanonicalIndex(ByteCodec)}, nil
		}
	}

	best := asDefault
	bestCost := len(defaultEncoded)

	if s.Effort > 3 && !isPopulationSubBand {
		distinctRatio := distinctRatio(values)
		threshold := 0.02
		if s.Effort > 6 {
			threshold = 0.04
		}

		if distinctRatio < threshold || distinctCount(values) < 100 {
			if sel, ok := s.tryPopulation(values, bestCost); ok {
				best, bestCost = sel, len(sel.Encoded)
			}
		}
	}

	budget := s.Effort
	if s.Effort > 6 {
		budget = 2 * s.Effort
	}

	for _, family := range s.familiesFor(bd) {
		if budget <= 0 {
			break
		}

		for _, candidate := range family {
			if budget <= 0 {
				break
			}
			budget--

			if !candidateCovers(candidate, bd) {
				continue
			}

			encoded, err := candidate.EncodeAll(values, 0)
			if err != nil {
				continue
			}

			idx, ok := CanonicalIndexOf(candidate.B, candidate.H, candidate.S, candidate.D)
			if !ok {
				continue
			}
			cost := len(encoded) + specifierOverhead(defaultCodec)

			if cost < bestCost {
				best = Selection{Codec: candidate, Encoded: encoded, Specifier: idx}
				bestCost = cost
			}
		}
	}

	s.observe(len(values), bestCost)

	return best, nil
}

// tryPopulation attempts a Population encoding of values and reports whether it beat
// currentBest bytes.
func (s *Selector) tryPopulation(values []int64, currentBest int) (Selection, bool) {
	pop := NewPopulation(ByteCodec, Unsigned5)

	encoded, err := pop.EncodeAll(values, 0)
	if err != nil || len(encoded) >= currentBest {
		return Selection{}, false
	}

	return Selection{Codec: pop, Encoded: encoded, Specifier: -1}, true
}

// familiesFor returns the canonical-codec families to try, in priority order, based on the band's
// shape.
func (s *Selector) familiesFor(bd BandData) [][]*BHSD {
	mainlyPositive := bd.MeanAbsValue >= 0 && bd.Smallest >= 0
	wellCorrelated := bd.AscendingFraction > 0.8 || bd.AscendingFraction < 0.2
	mainlyPositiveSmallDeltas := bd.SmallDeltaFraction > 0.6 && bd.Smallest >= 0

	deltaUnsigned := []*BHSD{UDelta5, mustNew(5, 64, 0, 1), mustNew(3, 128, 0, 1)}
	nonDeltaUnsigned := []*BHSD{Unsigned5, mustNew(3, 128, 0, 0), ByteCodec}
	deltaSigned := []*BHSD{Delta5, mustNew(5, 32, 1, 1)}
	nonDeltaSigned := []*BHSD{Signed5, mustNew(5, 32, 1, 0)}

	switch {
	case mainlyPositiveSmallDeltas:
		return [][]*BHSD{deltaUnsigned}
	case wellCorrelated && mainlyPositive:
		return [][]*BHSD{deltaUnsigned, nonDeltaUnsigned}
	case wellCorrelated:
		return [][]*BHSD{deltaSigned, nonDeltaSigned}
	case bd.Smallest < 0:
		return [][]*BHSD{nonDeltaSigned, deltaSigned}
	default:
		return [][]*BHSD{nonDeltaUnsigned, deltaUnsigned}
	}
}

// candidateCovers reports whether candidate's representable range covers the band (its raw values
// for non-delta codecs, or its deltas for delta codecs).
func candidateCovers(candidate *BHSD, bd BandData) bool {
	if candidate.Delta() {
		if len(bd.Deltas) == 0 {
			return true
		}

		lo, hi := bd.Deltas[0], bd.Deltas[0]
		for _, d := range bd.Deltas {
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
		}

		return lo >= candidate.smallest && hi <= candidate.largest
	}

	return bd.Smallest >= candidate.smallest && bd.Largest <= candidate.largest
}

// specifierOverhead is the cost, in bytes, of the specifier integer that must precede a
// non-default codec's encoded band. It is always encoded with the default codec.
func specifierOverhead(defaultCodec *BHSD) int {
	return defaultCodec.B
}

func mustCanonicalIndex(c *BHSD) int {
	idx, _ := CanonicalIndexOf(c.B, c.H, c.S, c.D)

	return idx
}

func distinctCount(values []int64) int {
	seen := make(map[int64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	return len(seen)
}

func distinctRatio(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	return float64(distinctCount(values)) / float64(len(values))
}
