package models

import (
	"fmt"

	"github.com/tsforge/go-horizon/stats"
)

// ARIMA is an ARMA(p, q) model over the d-times differenced series. Step and
// Predict operate on the original scale, differencing the supplied history
// internally and integrating the differenced forecast back.
type ARIMA struct {
	d    int
	arma *ARMA

	trained bool
	resid   []float64
}

// NewARIMA creates an ARIMA(p, d, q) model. A nil optimizer selects the
// gonum Nelder-Mead default.
func NewARIMA(p, d, q int, opt Optimizer) (*ARIMA, error) {
	if d < 0 {
		return nil, ErrInvalidOrder
	}
	arma, err := NewARMA(p, q, opt)
	if err != nil {
		return nil, err
	}
	return &ARIMA{d: d, arma: arma}, nil
}

func (a *ARIMA) Train(y []float64) error {
	dy, err := stats.DiffN(y, a.d)
	if err != nil {
		return fmt.Errorf("unable to difference training series, %w", err)
	}
	if err := a.arma.Train(dy); err != nil {
		return err
	}
	a.trained = true

	// one-step errors coincide on the original and differenced scales
	a.resid = make([]float64, len(y))
	copy(a.resid[a.d:], a.arma.Residuals())
	return nil
}

func (a *ARIMA) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(a.trained, t, y); err != nil {
		return 0, err
	}
	if t < a.d {
		// not enough history to difference, fall back to the naive forecast
		return lagVal(y, t), nil
	}

	levels := diffLevels(y[:t+1], a.d)
	deepest := levels[a.d]
	f, err := a.arma.Predict(len(deepest)-1, deepest)
	if err != nil {
		return 0, err
	}
	for k := a.d - 1; k >= 0; k-- {
		f += levels[k][len(levels[k])-1]
	}
	return f, nil
}

func (a *ARIMA) Lags() int {
	return a.arma.Lags() + a.d
}

func (a *ARIMA) Step(lags, errs []float64) float64 {
	if a.d == 0 {
		return a.arma.Step(lags, errs)
	}

	w := reversed(lags)
	levels := diffLevels(w, a.d)
	f := a.arma.Step(reversed(levels[a.d]), errs[:a.arma.Lags()])
	for k := a.d - 1; k >= 0; k-- {
		f += levels[k][len(levels[k])-1]
	}
	return f
}

func (a *ARIMA) Parameters() []float64 {
	return a.arma.Parameters()
}

func (a *ARIMA) Residuals() []float64 {
	return a.resid
}

// diffLevels returns the series differenced 0 through d times, oldest value
// first in each level.
func diffLevels(y []float64, d int) [][]float64 {
	levels := make([][]float64, d+1)
	levels[0] = y
	for k := 1; k <= d; k++ {
		prev := levels[k-1]
		dy := make([]float64, len(prev)-1)
		for i := 1; i < len(prev); i++ {
			dy[i-1] = prev[i] - prev[i-1]
		}
		levels[k] = dy
	}
	return levels
}

func reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}
