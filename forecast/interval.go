package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the two-sided confidence level used when Interval is
// called with a zero confidence.
const DefaultConfidence = 0.9

var (
	ErrIntervalLenMismatch = errors.New("actual and forecast have different lengths")
	ErrTooFewResiduals     = errors.New("need at least two residuals to estimate dispersion")
	ErrInvalidConfidence   = errors.New("confidence level must be in (0, 1)")
	ErrDegenerateResidual  = errors.New("residual dispersion is zero or non-finite")
)

// Interval converts the point forecasts at one horizon into symmetric
// prediction bounds by scaling the residual standard deviation with the
// two-sided Normal z-score for the confidence level. A zero confidence
// selects DefaultConfidence. This assumes i.i.d. Normal residuals at the
// horizon; it is a simplifying assumption, not a guarantee, and callers
// needing distribution-free intervals must substitute an estimator with the
// same signature.
func Interval(actual, forecasted []float64, confidence float64) (lower, upper []float64, err error) {
	if len(actual) != len(forecasted) {
		return nil, nil, fmt.Errorf("actual of %d and forecast of %d, %w", len(actual), len(forecasted), ErrIntervalLenMismatch)
	}
	if len(actual) < 2 {
		return nil, nil, ErrTooFewResiduals
	}
	if confidence == 0 {
		confidence = DefaultConfidence
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, nil, fmt.Errorf("confidence %f, %w", confidence, ErrInvalidConfidence)
	}

	resid := make([]float64, len(actual))
	for i := range actual {
		resid[i] = actual[i] - forecasted[i]
	}
	sigma := stat.StdDev(resid, nil)
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma == 0 {
		return nil, nil, ErrDegenerateResidual
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - (1-confidence)/2)
	band := z * sigma

	lower = make([]float64, len(forecasted))
	upper = make([]float64, len(forecasted))
	for i, v := range forecasted {
		lower[i] = v - band
		upper[i] = v + band
	}
	return lower, upper, nil
}
