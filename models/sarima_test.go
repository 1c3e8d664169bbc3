package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasonalTrendSeries(n int) []float64 {
	base := []float64{10, 20, 30, 40}
	y := make([]float64, n)
	for i := range y {
		y[i] = base[i%4] + 0.5*float64(i)
	}
	return y
}

func TestSARIMASeasonalTrend(t *testing.T) {
	y := seasonalTrendSeries(24)

	// one seasonal difference at period 4 leaves a constant series
	sarima, err := NewSARIMA(1, 0, 0, 1, 4, nil)
	require.NoError(t, err)
	require.NoError(t, sarima.Train(y))

	p, err := sarima.Predict(len(y)-1, y)
	require.NoError(t, err)
	next := 10 + 0.5*float64(len(y))
	assert.InDelta(t, next, p, 1e-4)
}

func TestSARIMASeasonalNaiveFallback(t *testing.T) {
	y := seasonalTrendSeries(24)

	sarima, err := NewSARIMA(1, 0, 0, 1, 4, nil)
	require.NoError(t, err)
	require.NoError(t, sarima.Train(y))

	// too early to seasonally difference, falls back to the seasonal naive
	p, err := sarima.Predict(2, y)
	require.NoError(t, err)
	assert.Equal(t, y[0], p)
}

func TestSARIMAStepMatchesPredict(t *testing.T) {
	y := seasonalTrendSeries(32)

	sarima, err := NewSARIMA(1, 0, 0, 1, 4, nil)
	require.NoError(t, err)
	require.NoError(t, sarima.Train(y))

	origin := len(y) - 1
	p, err := sarima.Predict(origin, y)
	require.NoError(t, err)

	n := sarima.Lags()
	lags := make([]float64, n)
	errs := make([]float64, n)
	for j := 0; j < n; j++ {
		lags[j] = y[origin-j]
	}
	assert.InDelta(t, p, sarima.Step(lags, errs), 1e-9)
}

func TestSARIMAPreconditions(t *testing.T) {
	_, err := NewSARIMA(1, 0, 0, 1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = NewSARIMA(1, -1, 0, 0, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}
