// Package forecast implements the multi-horizon recursive forecasting
// engine: the shared forecast matrix, the diagonal recursion that turns a
// fitted one-step model into h-step-ahead forecasts, and Normal-error
// prediction intervals.
package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidSeriesLen  = errors.New("series must have at least one observation")
	ErrInvalidHorizon    = errors.New("horizon must be at least 1")
	ErrHorizonTooSmall   = errors.New("matrix-based forecast requires horizon of at least 2")
	ErrHorizonExceedsMax = errors.New("horizon exceeds matrix maximum")
	ErrRowOutOfBounds    = errors.New("row is out of bounds")
	ErrColOutOfBounds    = errors.New("column is out of bounds")
)

// Matrix is the forecast table shared by every horizon computation. It has
// m+hMax rows and hMax+2 columns: column 0 holds the actual values (zero
// beyond the observed series), column k for 1 <= k <= hMax holds the
// k-steps-ahead forecast for row t made with information available at time
// t-k, and the final column carries the time index for alignment. Cells in
// the unforecastable triangles are left at the zero sentinel and are never
// computed.
type Matrix struct {
	m     int
	hMax  int
	dense *mat.Dense
}

// NewMatrix allocates a zeroed forecast matrix for a series of length m and
// a maximum horizon hMax. The time-index column is filled on allocation.
func NewMatrix(m, hMax int) (*Matrix, error) {
	if m < 1 {
		return nil, ErrInvalidSeriesLen
	}
	if hMax < 1 {
		return nil, ErrInvalidHorizon
	}
	rows := m + hMax
	d := mat.NewDense(rows, hMax+2, nil)
	for t := 0; t < rows; t++ {
		d.Set(t, hMax+1, float64(t))
	}
	return &Matrix{m: m, hMax: hMax, dense: d}, nil
}

// Rows returns the number of rows, the observed series length extended by
// the maximum horizon.
func (mx *Matrix) Rows() int {
	return mx.m + mx.hMax
}

// SeriesLen returns the observed series length the matrix was sized for.
func (mx *Matrix) SeriesLen() int {
	return mx.m
}

// Horizons returns the maximum horizon the matrix can hold.
func (mx *Matrix) Horizons() int {
	return mx.hMax
}

// Actual returns the observed value at row t. Rows beyond the observed
// series hold the zero sentinel.
func (mx *Matrix) Actual(t int) (float64, error) {
	if t < 0 || t >= mx.Rows() {
		return 0, fmt.Errorf("row %d of %d, %w", t, mx.Rows(), ErrRowOutOfBounds)
	}
	return mx.dense.At(t, 0), nil
}

// At returns the h-steps-ahead forecast stored for row t.
func (mx *Matrix) At(t, h int) (float64, error) {
	if t < 0 || t >= mx.Rows() {
		return 0, fmt.Errorf("row %d of %d, %w", t, mx.Rows(), ErrRowOutOfBounds)
	}
	if h < 1 || h > mx.hMax {
		return 0, fmt.Errorf("horizon %d of %d, %w", h, mx.hMax, ErrColOutOfBounds)
	}
	return mx.dense.At(t, h), nil
}

// Col returns a copy of the forecast column for horizon h.
func (mx *Matrix) Col(h int) ([]float64, error) {
	if h < 1 || h > mx.hMax {
		return nil, fmt.Errorf("horizon %d of %d, %w", h, mx.hMax, ErrColOutOfBounds)
	}
	out := make([]float64, mx.Rows())
	mat.Col(out, h, mx.dense)
	return out, nil
}

// TimeIndex returns the logical time index carried in the final column.
func (mx *Matrix) TimeIndex(t int) (int, error) {
	if t < 0 || t >= mx.Rows() {
		return 0, fmt.Errorf("row %d of %d, %w", t, mx.Rows(), ErrRowOutOfBounds)
	}
	return int(mx.dense.At(t, mx.hMax+1)), nil
}

// Dense exposes the backing dense matrix for inspection and debugging.
// Callers must not write through it.
func (mx *Matrix) Dense() *mat.Dense {
	return mx.dense
}

// SetActual records the observed value for row t. The forecaster fills this
// column itself; the exported form exists for callers assembling a matrix
// from pre-computed columns.
func (mx *Matrix) SetActual(t int, v float64) error {
	if t < 0 || t >= mx.Rows() {
		return fmt.Errorf("row %d of %d, %w", t, mx.Rows(), ErrRowOutOfBounds)
	}
	mx.dense.Set(t, 0, v)
	return nil
}

// Set stores an h-steps-ahead forecast for row t, bypassing the recursion.
// Writing a cell the diagonal recursion would later read breaks the
// no-lookahead guarantee, so this is for assembling matrices from
// pre-computed columns only.
func (mx *Matrix) Set(t, h int, v float64) error {
	if t < 0 || t >= mx.Rows() {
		return fmt.Errorf("row %d of %d, %w", t, mx.Rows(), ErrRowOutOfBounds)
	}
	if h < 1 || h > mx.hMax {
		return fmt.Errorf("horizon %d of %d, %w", h, mx.hMax, ErrColOutOfBounds)
	}
	mx.dense.Set(t, h, v)
	return nil
}

func (mx *Matrix) setActual(t int, v float64) {
	mx.dense.Set(t, 0, v)
}

func (mx *Matrix) at(t, h int) float64 {
	return mx.dense.At(t, h)
}

func (mx *Matrix) set(t, h int, v float64) {
	mx.dense.Set(t, h, v)
}
