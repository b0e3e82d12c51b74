package sizemodel

import (
	"fmt"
	"math"
	"strings"
)

// ModelType identifies the shape of a fitted curve.
type ModelType int

const (
	// ModelTypeHyperbolic represents BPV = a + b / Length.
	ModelTypeHyperbolic ModelType = iota
	// ModelTypeLogarithmic represents BPV = a + b * ln(Length).
	ModelTypeLogarithmic
	// ModelTypePower represents BPV = a * Length^b.
	ModelTypePower
)

var modelTypeNames = map[ModelType]string{
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
}

func (mt ModelType) String() string {
	if name, ok := modelTypeNames[mt]; ok {
		return name
	}

	return "unknown"
}

var modelTypeFromString = map[string]ModelType{
	"hyperbolic":  ModelTypeHyperbolic,
	"logarithmic": ModelTypeLogarithmic,
	"power":       ModelTypePower,
}

// ModelTypeFromString returns ModelType(-1) if name is not recognized.
func ModelTypeFromString(name string) ModelType {
	if mt, ok := modelTypeFromString[strings.ToLower(name)]; ok {
		return mt
	}

	return ModelType(-1)
}

// Estimator predicts bytes-per-value for a given band length.
type Estimator interface {
	// Estimate returns the predicted bytes-per-value for the given band length.
	Estimate(length float64) float64
	Type() ModelType
	Coefficients() []float64
}

// HyperbolicEstimator implements BPV = a + b / Length.
type HyperbolicEstimator struct{ a, b float64 }

func NewHyperbolicEstimator(a, b float64) *HyperbolicEstimator {
	return &HyperbolicEstimator{a: a, b: b}
}

func (h *HyperbolicEstimator) Estimate(length float64) float64 {
	if length <= 0 {
		return math.Inf(1)
	}

	return h.a + h.b/length
}

func (h *HyperbolicEstimator) Type() ModelType           { return ModelTypeHyperbolic }
func (h *HyperbolicEstimator) Coefficients() []float64   { return []float64{h.a, h.b} }

// LogarithmicEstimator implements BPV = a + b * ln(Length).
type LogarithmicEstimator struct{ a, b float64 }

func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{a: a, b: b}
}

func (l *LogarithmicEstimator) Estimate(length float64) float64 {
	if length <= 0 {
		return math.Inf(1)
	}

	return l.a + l.b*math.Log(length)
}

func (l *LogarithmicEstimator) Type() ModelType         { return ModelTypeLogarithmic }
func (l *LogarithmicEstimator) Coefficients() []float64 { return []float64{l.a, l.b} }

// PowerEstimator implements BPV = a * Length^b.
type PowerEstimator struct{ a, b float64 }

func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{a: a, b: b}
}

func (p *PowerEstimator) Estimate(length float64) float64 {
	if length <= 0 {
		return math.Inf(1)
	}

	return p.a * math.Pow(length, p.b)
}

func (p *PowerEstimator) Type() ModelType         { return ModelTypePower }
func (p *PowerEstimator) Coefficients() []float64 { return []float64{p.a, p.b} }

// NewEstimator builds an Estimator by model name and coefficients ([a, b] for all three types).
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	if len(coeffs) != 2 {
		return nil, fmt.Errorf("sizemodel: expected 2 coefficients, got %d", len(coeffs))
	}

	switch ModelTypeFromString(name) {
	case ModelTypeHyperbolic:
		return NewHyperbolicEstimator(coeffs[0], coeffs[1]), nil
	case ModelTypeLogarithmic:
		return NewLogarithmicEstimator(coeffs[0], coeffs[1]), nil
	case ModelTypePower:
		return NewPowerEstimator(coeffs[0], coeffs[1]), nil
	default:
		return nil, fmt.Errorf("sizemodel: unknown model type %q", name)
	}
}
