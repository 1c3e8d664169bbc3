package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrInvalidLag       = errors.New("maximum lag must be at least 1")
	ErrACFTooShort      = errors.New("need autocorrelations through the requested order")
	ErrSingularToeplitz = errors.New("singular autocorrelation structure")
)

// ACF returns the autocorrelation function of y for lags 0 through maxLag.
// Lag 0 is always 1. maxLag is capped at len(y)-1.
func ACF(y []float64, maxLag int) ([]float64, error) {
	if maxLag < 1 {
		return nil, ErrInvalidLag
	}
	if len(y) < 2 {
		return nil, fmt.Errorf("have %d points, %w", len(y), ErrSeriesTooShort)
	}
	if maxLag >= len(y) {
		maxLag = len(y) - 1
	}

	mean := stat.Mean(y, nil)
	var variance float64
	for _, v := range y {
		dev := v - mean
		variance += dev * dev
	}
	if variance == 0 {
		return nil, ErrZeroVariance
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		var sum float64
		for i := k; i < len(y); i++ {
			sum += (y[i] - mean) * (y[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf, nil
}

// YuleWalker solves the Yule-Walker equations for AR(p) coefficients using
// the Levinson-Durbin recursion over the autocorrelation sequence acf, which
// must contain lags 0 through at least p.
func YuleWalker(acf []float64, p int) ([]float64, error) {
	if p < 1 {
		return nil, ErrInvalidLag
	}
	if len(acf) <= p {
		return nil, fmt.Errorf("have %d autocorrelations for order %d, %w", len(acf), p, ErrACFTooShort)
	}

	phi := make([]float64, p)
	prev := make([]float64, p)
	phi[0] = acf[1]

	for k := 2; k <= p; k++ {
		copy(prev, phi)

		var num, den float64
		num = acf[k]
		den = 1.0
		for j := 1; j < k; j++ {
			num -= prev[j-1] * acf[k-j]
			den -= prev[j-1] * acf[j]
		}
		if den == 0 {
			return nil, ErrSingularToeplitz
		}
		phi[k-1] = num / den
		for j := 1; j < k; j++ {
			phi[j-1] = prev[j-1] - phi[k-1]*prev[k-1-j]
		}
	}
	return phi, nil
}
