package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Optimizer minimizes an objective function from an initial guess. The
// ARMA-family models treat coefficient estimation as a black box behind this
// interface, so callers can substitute any numerical optimizer.
type Optimizer interface {
	Minimize(objective func([]float64) float64, initial []float64) ([]float64, error)
}

// NelderMead is the default gradient-free Optimizer backed by the gonum
// implementation.
type NelderMead struct {
	MaxIterations int
}

func NewNelderMead() *NelderMead {
	return &NelderMead{MaxIterations: 1000}
}

func (nm *NelderMead) Minimize(objective func([]float64) float64, initial []float64) ([]float64, error) {
	problem := optimize.Problem{Func: objective}

	init := make([]float64, len(initial))
	copy(init, initial)

	settings := &optimize.Settings{
		MajorIterations: nm.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 50,
		},
	}

	res, err := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("unable to minimize objective, %w", err)
	}
	if err := res.Status.Err(); err != nil {
		return nil, fmt.Errorf("optimizer terminated abnormally, %w", err)
	}
	for _, v := range res.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNonFiniteFit
		}
	}
	return res.X, nil
}
