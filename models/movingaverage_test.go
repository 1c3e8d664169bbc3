package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleMovingAveragePredict(t *testing.T) {
	y := []float64{2, 4, 6, 8, 10}
	sma, err := NewSimpleMovingAverage(3)
	require.NoError(t, err)
	require.NoError(t, sma.Train(y))

	p, err := sma.Predict(4, y)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, p, 1e-12)

	// lag references before the start of history repeat the first value
	p, err = sma.Predict(0, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p, 1e-12)

	p, err = sma.Predict(1, y)
	require.NoError(t, err)
	assert.InDelta(t, (2.0+2.0+4.0)/3.0, p, 1e-12)
}

func TestSimpleMovingAverageStep(t *testing.T) {
	sma, err := NewSimpleMovingAverage(2)
	require.NoError(t, err)
	require.NoError(t, sma.Train([]float64{1, 2, 3}))

	assert.InDelta(t, 2.5, sma.Step([]float64{3, 2}, []float64{0, 0}), 1e-12)
	assert.Equal(t, 2, sma.Lags())
}

func TestSimpleMovingAveragePreconditions(t *testing.T) {
	_, err := NewSimpleMovingAverage(0)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	sma, err := NewSimpleMovingAverage(5)
	require.NoError(t, err)
	assert.ErrorIs(t, sma.Train([]float64{1, 2}), ErrInsufficientData)
}

func TestWeightedMovingAverageNormalization(t *testing.T) {
	wma, err := NewWeightedMovingAverage([]float64{3, 1})
	require.NoError(t, err)

	weights := wma.Parameters()
	assert.InDeltaSlice(t, []float64{0.75, 0.25}, weights, 1e-12)

	y := []float64{1, 2, 4, 8}
	require.NoError(t, wma.Train(y))

	p, err := wma.Predict(3, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.75*8+0.25*4, p, 1e-12)

	assert.InDelta(t, 0.75*8+0.25*4, wma.Step([]float64{8, 4}, []float64{0, 0}), 1e-12)
}

func TestWeightedMovingAveragePreconditions(t *testing.T) {
	_, err := NewWeightedMovingAverage(nil)
	assert.ErrorIs(t, err, ErrNoWeights)

	_, err = NewWeightedMovingAverage([]float64{1, -1})
	assert.ErrorIs(t, err, ErrZeroWeightSum)
}
