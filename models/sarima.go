package models

import (
	"fmt"

	"github.com/tsforge/go-horizon/stats"
)

// SARIMA handles seasonality through D seasonal differences at the given
// period, followed by d first differences and an ARMA(p, q) fit. Seasonal
// AR and MA terms are not modeled separately; the seasonal structure is
// absorbed by the differencing.
type SARIMA struct {
	d, seasonalD, period int
	arma                 *ARMA

	trained bool
	resid   []float64
}

// NewSARIMA creates a SARIMA(p, d, q)(D, period) model. A nil optimizer
// selects the gonum Nelder-Mead default.
func NewSARIMA(p, d, q, seasonalD, period int, opt Optimizer) (*SARIMA, error) {
	if d < 0 || seasonalD < 0 {
		return nil, ErrInvalidOrder
	}
	if seasonalD > 0 && period < 2 {
		return nil, ErrInvalidOrder
	}
	arma, err := NewARMA(p, q, opt)
	if err != nil {
		return nil, err
	}
	return &SARIMA{d: d, seasonalD: seasonalD, period: period, arma: arma}, nil
}

func (s *SARIMA) Train(y []float64) error {
	z := y
	var err error
	for i := 0; i < s.seasonalD; i++ {
		z, err = stats.SeasonalDiff(z, s.period)
		if err != nil {
			return fmt.Errorf("unable to seasonally difference training series, %w", err)
		}
	}
	z, err = stats.DiffN(z, s.d)
	if err != nil {
		return fmt.Errorf("unable to difference training series, %w", err)
	}
	if err := s.arma.Train(z); err != nil {
		return err
	}
	s.trained = true

	shift := s.seasonalD*s.period + s.d
	s.resid = make([]float64, len(y))
	copy(s.resid[shift:], s.arma.Residuals())
	return nil
}

func (s *SARIMA) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(s.trained, t, y); err != nil {
		return 0, err
	}
	if t < s.seasonalD*s.period+s.d {
		// seasonal naive fallback until enough history accumulates
		if s.seasonalD > 0 {
			return lagVal(y, t+1-s.period), nil
		}
		return lagVal(y, t), nil
	}

	seasonal, flat := s.pipeline(y[:t+1])
	deepest := flat[s.d]
	f, err := s.arma.Predict(len(deepest)-1, deepest)
	if err != nil {
		return 0, err
	}
	return s.integrate(f, seasonal, flat), nil
}

func (s *SARIMA) Lags() int {
	return s.arma.Lags() + s.d + s.seasonalD*s.period
}

func (s *SARIMA) Step(lags, errs []float64) float64 {
	if s.d == 0 && s.seasonalD == 0 {
		return s.arma.Step(lags, errs)
	}

	w := reversed(lags)
	seasonal, flat := s.pipeline(w)
	f := s.arma.Step(reversed(flat[s.d]), errs[:s.arma.Lags()])
	return s.integrate(f, seasonal, flat)
}

// pipeline applies the seasonal differences then the first differences,
// returning both stacks of intermediate series for integration.
func (s *SARIMA) pipeline(y []float64) (seasonal, flat [][]float64) {
	seasonal = make([][]float64, s.seasonalD+1)
	seasonal[0] = y
	for i := 1; i <= s.seasonalD; i++ {
		prev := seasonal[i-1]
		dy := make([]float64, len(prev)-s.period)
		for j := s.period; j < len(prev); j++ {
			dy[j-s.period] = prev[j] - prev[j-s.period]
		}
		seasonal[i] = dy
	}
	flat = diffLevels(seasonal[s.seasonalD], s.d)
	return seasonal, flat
}

// integrate undoes the first differences then the seasonal differences to
// bring a differenced one-step forecast back to the original scale.
func (s *SARIMA) integrate(f float64, seasonal, flat [][]float64) float64 {
	for k := s.d - 1; k >= 0; k-- {
		f += flat[k][len(flat[k])-1]
	}
	for i := s.seasonalD - 1; i >= 0; i-- {
		f += seasonal[i][len(seasonal[i])-s.period]
	}
	return f
}

func (s *SARIMA) Parameters() []float64 {
	return s.arma.Parameters()
}

func (s *SARIMA) Residuals() []float64 {
	return s.resid
}
