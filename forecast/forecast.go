package forecast

import (
	"errors"
	"fmt"

	"github.com/tsforge/go-horizon/models"
)

var (
	ErrNoModel           = errors.New("no one-step model provided")
	ErrSeriesLenMismatch = errors.New("series length does not match matrix")
	ErrOriginOutOfRange  = errors.New("forecast origin is out of range")
	ErrWindowOutOfRange  = errors.New("retrain window is out of range")
)

// Options configures a Forecaster.
type Options struct {
	// Backcast synthesizes the value preceding the first observation so
	// that predicting y[0] has a defined look-back.
	Backcast func(y []float64) float64
}

func NewDefaultOptions() *Options {
	return &Options{
		Backcast: RepeatFirst,
	}
}

// RepeatFirst is the default backcast: history repeats backward, matching
// the engine's clamping of negative lag references to index 0.
func RepeatFirst(y []float64) float64 {
	return y[0]
}

// Forecaster drives a one-step model through the diagonal recursion that
// fills a forecast Matrix. It owns the one-step residual vector, which is
// rebuilt on every PredictAll and Retrain; slot 0 is the backcast sentinel
// (zero error at t = -1). A Forecaster and the matrices it fills are not
// safe for concurrent use, and a matrix built before a Retrain must not be
// forecast against afterwards.
type Forecaster struct {
	model models.Model
	opt   *Options

	resid       []float64
	residOffset int
}

// New creates a Forecaster around a one-step model. If no options are
// provided a default is used.
func New(model models.Model, opt *Options) (*Forecaster, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Forecaster{model: model, opt: opt}, nil
}

// Model returns the one-step model driven by this forecaster.
func (f *Forecaster) Model() models.Model {
	return f.model
}

// Residuals returns the one-step errors from the most recent PredictAll or
// Retrain. The slice is owned by the forecaster.
func (f *Forecaster) Residuals() []float64 {
	return f.resid
}

func (f *Forecaster) extend(y []float64) []float64 {
	z := make([]float64, len(y)+1)
	z[0] = f.opt.Backcast(y)
	copy(z[1:], y)
	return z
}

// PredictAll produces the one-step prediction for every time point of y,
// prepending a synthetic backcast value so that predicting y[0] has a
// defined look-back. The returned slice is aligned 1:1 with y. The
// forecaster's residual vector is rebuilt as a side effect.
func (f *Forecaster) PredictAll(y []float64) ([]float64, error) {
	if len(y) < 1 {
		return nil, ErrInvalidSeriesLen
	}
	z := f.extend(y)
	yp := make([]float64, len(y))
	e := make([]float64, len(y)+1)
	for t := 0; t < len(y); t++ {
		p, err := f.model.Predict(t, z)
		if err != nil {
			return nil, fmt.Errorf("unable to predict at index %d, %w", t, err)
		}
		yp[t] = p
		e[t+1] = y[t] - p
	}
	f.resid = e
	f.residOffset = 0
	return yp, nil
}

// valueAt resolves the lagged value for source time s as seen from the
// forecast origin: actual values at or before the origin (with negative
// references clamped to the start of history), already-forecasted matrix
// cells beyond it.
func (f *Forecaster) valueAt(mx *Matrix, y []float64, origin, s int) float64 {
	if s <= origin {
		if s < 0 {
			s = 0
		}
		return y[s]
	}
	return mx.at(s, s-origin)
}

// errAt resolves the one-step error for source time s as seen from the
// forecast origin. Future errors are zero by conditional expectation.
func (f *Forecaster) errAt(origin, s int) float64 {
	if s > origin {
		return 0
	}
	idx := s - f.residOffset + 1
	if idx < 0 || idx >= len(f.resid) {
		return 0
	}
	return f.resid[idx]
}

// step computes the horizon-h forecast from origin by walking the matrix
// anti-diagonal for the model's lag window.
func (f *Forecaster) step(mx *Matrix, y []float64, origin, h int) float64 {
	n := f.model.Lags()
	lags := make([]float64, n)
	errs := make([]float64, n)
	for j := 0; j < n; j++ {
		s := origin + h - 1 - j
		lags[j] = f.valueAt(mx, y, origin, s)
		errs[j] = f.errAt(origin, s)
	}
	return f.model.Step(lags, errs)
}

// ForecastAt fills forecast column h of the matrix for every origin in the
// observed series, returning the column values in origin order. Horizon h-1
// must already be filled, so callers iterate horizons in increasing order.
// Requesting a horizon below 2 is a programming error and is never clamped.
func (f *Forecaster) ForecastAt(mx *Matrix, y []float64, h int) ([]float64, error) {
	if h < 2 {
		return nil, fmt.Errorf("horizon %d, %w", h, ErrHorizonTooSmall)
	}
	if h > mx.Horizons() {
		return nil, fmt.Errorf("horizon %d of %d, %w", h, mx.Horizons(), ErrHorizonExceedsMax)
	}
	if len(y) != mx.SeriesLen() {
		return nil, fmt.Errorf("series of %d for matrix of %d, %w", len(y), mx.SeriesLen(), ErrSeriesLenMismatch)
	}

	out := make([]float64, 0, mx.SeriesLen())
	for origin := 0; origin < mx.SeriesLen(); origin++ {
		v := f.step(mx, y, origin, h)
		mx.set(origin+h, h, v)
		out = append(out, v)
	}
	return out, nil
}

// ForecastAll allocates the forecast matrix for y and fills every horizon
// column 1..hMax: the actuals column is copied from y, the one-step column
// comes from PredictAll, and each higher horizon is filled by ForecastAt in
// increasing order since every column depends on the previous one.
func (f *Forecaster) ForecastAll(y []float64, hMax int) (*Matrix, error) {
	if hMax < 1 {
		return nil, fmt.Errorf("horizon %d, %w", hMax, ErrInvalidHorizon)
	}
	mx, err := NewMatrix(len(y), hMax)
	if err != nil {
		return nil, err
	}
	for t := 0; t < len(y); t++ {
		mx.setActual(t, y[t])
	}

	yp, err := f.PredictAll(y)
	if err != nil {
		return nil, fmt.Errorf("unable to build one-step column, %w", err)
	}
	for t := 0; t < len(y); t++ {
		mx.set(t, 1, yp[t])
	}

	// one-step forecast just past the end of history, needed as a lag
	// source by the higher horizons
	z := f.extend(y)
	next, err := f.model.Predict(len(z)-1, z)
	if err != nil {
		return nil, fmt.Errorf("unable to predict past end of history, %w", err)
	}
	mx.set(len(y), 1, next)

	for h := 2; h <= hMax; h++ {
		if _, err := f.ForecastAt(mx, y, h); err != nil {
			return nil, fmt.Errorf("unable to forecast horizon %d, %w", h, err)
		}
	}
	return mx, nil
}

// Forecast produces the 1..hMax step forecasts from a single origin,
// writing them down the matrix diagonal starting at row origin+1. This is
// the primitive the rolling validator drives after each retrain.
func (f *Forecaster) Forecast(mx *Matrix, y []float64, origin, hMax int) ([]float64, error) {
	if hMax < 1 {
		return nil, fmt.Errorf("horizon %d, %w", hMax, ErrInvalidHorizon)
	}
	if hMax > mx.Horizons() {
		return nil, fmt.Errorf("horizon %d of %d, %w", hMax, mx.Horizons(), ErrHorizonExceedsMax)
	}
	if len(y) != mx.SeriesLen() {
		return nil, fmt.Errorf("series of %d for matrix of %d, %w", len(y), mx.SeriesLen(), ErrSeriesLenMismatch)
	}
	if origin < 0 || origin >= len(y) {
		return nil, fmt.Errorf("origin %d for series of %d, %w", origin, len(y), ErrOriginOutOfRange)
	}

	out := make([]float64, hMax)
	p, err := f.model.Predict(origin, y)
	if err != nil {
		return nil, fmt.Errorf("unable to predict at origin %d, %w", origin, err)
	}
	mx.set(origin+1, 1, p)
	out[0] = p

	for h := 2; h <= hMax; h++ {
		v := f.step(mx, y, origin, h)
		mx.set(origin+h, h, v)
		out[h-1] = v
	}
	return out, nil
}

// Retrain refits the model on the window y[lo:hi] and rebuilds the residual
// vector for that window. Matrices filled before a Retrain are stale and
// must not be forecast against.
func (f *Forecaster) Retrain(y []float64, lo, hi int) error {
	if lo < 0 || hi > len(y) || hi-lo < 1 {
		return fmt.Errorf("window [%d:%d) for series of %d, %w", lo, hi, len(y), ErrWindowOutOfRange)
	}
	window := y[lo:hi]
	if err := f.model.Train(window); err != nil {
		return fmt.Errorf("unable to retrain model on window [%d:%d), %w", lo, hi, err)
	}

	z := f.extend(window)
	e := make([]float64, len(window)+1)
	for t := 0; t < len(window); t++ {
		p, err := f.model.Predict(t, z)
		if err != nil {
			return fmt.Errorf("unable to rebuild residuals at window index %d, %w", t, err)
		}
		e[t+1] = window[t] - p
	}
	f.resid = e
	f.residOffset = lo
	return nil
}

// Align extracts the aligned (actual, forecast) pairs for horizon h from a
// filled matrix: forecasts for rows where both an observation and a
// horizon-h forecast exist, dropping the first h unforecastable rows.
func Align(mx *Matrix, y []float64, h int) (actual, forecasted []float64, err error) {
	if h < 1 || h > mx.Horizons() {
		return nil, nil, fmt.Errorf("horizon %d of %d, %w", h, mx.Horizons(), ErrColOutOfBounds)
	}
	if len(y) != mx.SeriesLen() {
		return nil, nil, fmt.Errorf("series of %d for matrix of %d, %w", len(y), mx.SeriesLen(), ErrSeriesLenMismatch)
	}
	actual = make([]float64, 0, len(y)-h)
	forecasted = make([]float64, 0, len(y)-h)
	for t := h; t < len(y); t++ {
		actual = append(actual, y[t])
		forecasted = append(forecasted, mx.at(t, h))
	}
	return actual, forecasted, nil
}
