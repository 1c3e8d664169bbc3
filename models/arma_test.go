package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARMAFitAR1(t *testing.T) {
	y := ar1Data(300, 0.7, 100)

	arma, err := NewARMA(1, 0, nil)
	require.NoError(t, err)
	require.NoError(t, arma.Train(y))

	params := arma.Parameters()
	require.Len(t, params, 2)
	assert.InDelta(t, 0.7, params[1], 0.2)

	// one-step predictions track the series
	var sse, sst float64
	for t1 := 1; t1 < len(y); t1++ {
		p, err := arma.Predict(t1-1, y)
		require.NoError(t, err)
		e := y[t1] - p
		sse += e * e
		d := y[t1] - 100
		sst += d * d
	}
	assert.Less(t, sse, sst)
}

func TestARMAFitMA1(t *testing.T) {
	n := 300
	innovations := make([]float64, n)
	for i := 0; i < n; i++ {
		innovations[i] = float64(i%7-3) / 3.0
	}
	theta := 0.5
	y := make([]float64, n)
	y[0] = innovations[0]
	for i := 1; i < n; i++ {
		y[i] = innovations[i] + theta*innovations[i-1]
	}

	arma, err := NewARMA(0, 1, nil)
	require.NoError(t, err)
	require.NoError(t, arma.Train(y))

	params := arma.Parameters()
	require.Len(t, params, 2)
	assert.InDelta(t, theta, params[1], 0.3)
}

func TestARMAStep(t *testing.T) {
	y := ar1Data(200, 0.5, 10)

	arma, err := NewARMA(1, 1, nil)
	require.NoError(t, err)
	require.NoError(t, arma.Train(y))

	params := arma.Parameters()
	require.Len(t, params, 3)

	lags := []float64{12.0}
	errs := []float64{0.4}
	want := params[0] + params[1]*12.0 + params[2]*0.4
	assert.InDelta(t, want, arma.Step(lags, errs), 1e-12)
}

func TestARMAConstantSeries(t *testing.T) {
	// differenced ramps and flat windows are constant, the fit must not
	// fall over on the zero-variance seed
	y := make([]float64, 30)
	for i := range y {
		y[i] = 5
	}

	arma, err := NewARMA(1, 0, nil)
	require.NoError(t, err)
	require.NoError(t, arma.Train(y))

	p, err := arma.Predict(10, y)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, p, 1e-6)
}

func TestARMAPreconditions(t *testing.T) {
	_, err := NewARMA(0, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = NewARMA(-1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	arma, err := NewARMA(2, 2, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, arma.Train([]float64{1, 2, 3}), ErrInsufficientData)
}
