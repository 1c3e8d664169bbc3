package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsforge/go-horizon/stats"
	"gonum.org/v1/gonum/stat"
)

// ARMA is an autoregressive moving-average model of order (p, q). AR
// coefficients are initialized from the Yule-Walker equations and the full
// parameter vector is refined by conditional-sum-of-squares minimization
// through a pluggable Optimizer.
type ARMA struct {
	p, q int
	opt  Optimizer

	intercept float64
	phi       []float64
	theta     []float64
	trained   bool
	resid     []float64
}

// NewARMA creates an ARMA(p, q) model. A nil optimizer selects the gonum
// Nelder-Mead default.
func NewARMA(p, q int, opt Optimizer) (*ARMA, error) {
	if p < 0 || q < 0 || p+q < 1 {
		return nil, ErrInvalidOrder
	}
	if opt == nil {
		opt = NewNelderMead()
	}
	return &ARMA{p: p, q: q, opt: opt}, nil
}

func (a *ARMA) Train(y []float64) error {
	if len(y) < a.p+a.q+5 {
		return fmt.Errorf("have %d points for order (%d,%d), %w", len(y), a.p, a.q, ErrInsufficientData)
	}

	init, err := a.initialGuess(y)
	if err != nil {
		return fmt.Errorf("unable to initialize arma coefficients, %w", err)
	}

	objective := func(params []float64) float64 {
		e := cssInnovations(params, a.p, a.q, y)
		var sse float64
		for t := max(a.p, a.q); t < len(e); t++ {
			sse += e[t] * e[t]
		}
		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return math.Inf(1)
		}
		return sse
	}

	params, err := a.opt.Minimize(objective, init)
	if err != nil {
		return fmt.Errorf("unable to fit arma model, %w", err)
	}

	a.intercept = params[0]
	a.phi = append([]float64(nil), params[1:1+a.p]...)
	a.theta = append([]float64(nil), params[1+a.p:]...)
	a.trained = true
	a.resid = cssInnovations(params, a.p, a.q, y)
	return nil
}

// initialGuess seeds the optimizer with Yule-Walker AR estimates, small
// constant MA terms, and an intercept matching the series mean.
func (a *ARMA) initialGuess(y []float64) ([]float64, error) {
	params := make([]float64, 1+a.p+a.q)
	mean := stat.Mean(y, nil)

	phiSum := 0.0
	if a.p > 0 {
		acf, err := stats.ACF(y, a.p)
		switch {
		case errors.Is(err, stats.ErrZeroVariance):
			// constant series carries no autocorrelation to seed from
		case err != nil:
			return nil, err
		default:
			phi, err := stats.YuleWalker(acf, a.p)
			if err != nil {
				return nil, err
			}
			for j := 0; j < a.p; j++ {
				params[1+j] = phi[j]
				phiSum += phi[j]
			}
		}
	}
	for j := 0; j < a.q; j++ {
		params[1+a.p+j] = 0.1
	}
	params[0] = mean * (1.0 - phiSum)
	return params, nil
}

// cssInnovations runs the one-step recursion over y under the given
// parameter vector [intercept, phi..., theta...], conditioning on zero
// pre-sample errors and on the first observation repeating backward.
func cssInnovations(params []float64, p, q int, y []float64) []float64 {
	intercept := params[0]
	phi := params[1 : 1+p]
	theta := params[1+p:]

	e := make([]float64, len(y))
	for t := 0; t < len(y); t++ {
		pred := intercept
		for j := 0; j < p; j++ {
			pred += phi[j] * lagVal(y, t-1-j)
		}
		for j := 0; j < q; j++ {
			if idx := t - 1 - j; idx >= 0 {
				pred += theta[j] * e[idx]
			}
		}
		e[t] = y[t] - pred
	}
	return e
}

func (a *ARMA) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(a.trained, t, y); err != nil {
		return 0, err
	}
	e := cssInnovations(a.params(), a.p, a.q, y[:t+1])
	pred := a.intercept
	for j := 0; j < a.p; j++ {
		pred += a.phi[j] * lagVal(y, t-j)
	}
	for j := 0; j < a.q; j++ {
		if idx := t - j; idx >= 0 {
			pred += a.theta[j] * e[idx]
		}
	}
	return pred, nil
}

func (a *ARMA) Lags() int {
	return max(a.p, a.q, 1)
}

func (a *ARMA) Step(lags, errs []float64) float64 {
	sum := a.intercept
	for j := 0; j < a.p; j++ {
		sum += a.phi[j] * lags[j]
	}
	for j := 0; j < a.q; j++ {
		sum += a.theta[j] * errs[j]
	}
	return sum
}

func (a *ARMA) params() []float64 {
	out := make([]float64, 0, 1+a.p+a.q)
	out = append(out, a.intercept)
	out = append(out, a.phi...)
	out = append(out, a.theta...)
	return out
}

// Parameters returns the intercept, AR coefficients, then MA coefficients.
func (a *ARMA) Parameters() []float64 {
	if !a.trained {
		return nil
	}
	return a.params()
}

func (a *ARMA) Residuals() []float64 {
	return a.resid
}
