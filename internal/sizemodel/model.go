package sizemodel

import "fmt"

// Model is a fitted curve plus its goodness-of-fit metrics.
type Model struct {
	Type      ModelType
	RSquared  float64
	RMSE      float64
	Formula   string
	Estimator Estimator
}

func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}", m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result is the outcome of fitting all candidate curves to one (length, bytesPerValue) sample set.
type Result struct {
	BestFit   *Model
	AllModels []*Model
}

func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d}", r.BestFit, len(r.AllModels))
}
