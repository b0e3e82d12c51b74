package sizemodel

import (
	"fmt"
	"math"
	"slices"
)

// Fit fits the hyperbolic, logarithmic, and power curves to the given (length, bytesPerValue)
// observations and returns all three ranked by R² (best first).
func Fit(lengths, bytesPerValue []float64) (*Result, error) {
	if len(lengths) != len(bytesPerValue) {
		return nil, fmt.Errorf("sizemodel: mismatched sample lengths: %d lengths vs %d bpv", len(lengths), len(bytesPerValue))
	}

	if len(lengths) < 2 {
		return nil, fmt.Errorf("sizemodel: insufficient samples for fitting: %d", len(lengths))
	}

	models := []*Model{
		fitHyperbolic(lengths, bytesPerValue),
		fitLogarithmic(lengths, bytesPerValue),
		fitPower(lengths, bytesPerValue),
	}

	slices.SortFunc(models, func(a, b *Model) int {
		switch {
		case a.RSquared > b.RSquared:
			return -1
		case a.RSquared < b.RSquared:
			return 1
		default:
			return 0
		}
	})

	return &Result{BestFit: models[0], AllModels: models}, nil
}

// FitBest fits all three curve families and returns only the winning Estimator, for callers that
// want a fast-path predictor without the full per-model R²/RMSE breakdown.
func FitBest(lengths, bytesPerValue []float64) (Estimator, error) {
	result, err := Fit(lengths, bytesPerValue)
	if err != nil {
		return nil, err
	}

	return result.BestFit.Estimator, nil
}

func fitHyperbolic(x, y []float64) *Model {
	n := len(x)

	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := 1.0 / x[i]
		sumX += xi
		sumY += y[i]
		sumXY += xi * y[i]
		sumX2 += xi * xi
	}

	meanX, meanY := sumX/float64(n), sumY/float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b/x[i]
	}

	return &Model{
		Type:      ModelTypeHyperbolic,
		RSquared:  rSquared(y, predicted),
		RMSE:      rmse(y, predicted),
		Formula:   fmt.Sprintf("BPV = %.4f + %.4f / Length", a, b),
		Estimator: NewHyperbolicEstimator(a, b),
	}
}

func fitLogarithmic(x, y []float64) *Model {
	n := len(x)

	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := math.Log(x[i])
		sumX += xi
		sumY += y[i]
		sumXY += xi * y[i]
		sumX2 += xi * xi
	}

	meanX, meanY := sumX/float64(n), sumY/float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b*math.Log(x[i])
	}

	return &Model{
		Type:      ModelTypeLogarithmic,
		RSquared:  rSquared(y, predicted),
		RMSE:      rmse(y, predicted),
		Formula:   fmt.Sprintf("BPV = %.4f + %.4f * ln(Length)", a, b),
		Estimator: NewLogarithmicEstimator(a, b),
	}
}

func fitPower(x, y []float64) *Model {
	n := len(x)

	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi, yi := math.Log(x[i]), math.Log(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX, meanY := sumX/float64(n), sumY/float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := math.Exp(meanY - b*meanX)

	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a * math.Pow(x[i], b)
	}

	return &Model{
		Type:      ModelTypePower,
		RSquared:  rSquared(y, predicted),
		RMSE:      rmse(y, predicted),
		Formula:   fmt.Sprintf("BPV = %.4f * Length^%.4f", a, b),
		Estimator: NewPowerEstimator(a, b),
	}
}

func rSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := mean(observed)
	var ssTot, ssRes float64
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - ssRes/ssTot
}

func rmse(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	var sumSq float64
	for i := range observed {
		d := observed[i] - predicted[i]
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
