package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomWalkUntrained(t *testing.T) {
	rw := NewRandomWalk()
	_, err := rw.Predict(0, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrUntrainedModel)
}

func TestRandomWalkPredict(t *testing.T) {
	y := []float64{1, 3, 4, 2, 5, 7, 9, 8, 6, 3}
	rw := NewRandomWalk()
	require.NoError(t, rw.Train(y))

	for i := 0; i < len(y); i++ {
		p, err := rw.Predict(i, y)
		require.NoError(t, err)
		assert.Equal(t, y[i], p)
	}

	_, err := rw.Predict(len(y), y)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = rw.Predict(-1, y)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRandomWalkStepIsFlat(t *testing.T) {
	rw := NewRandomWalk()
	require.NoError(t, rw.Train([]float64{1, 2}))

	assert.Equal(t, 4.2, rw.Step([]float64{4.2}, []float64{0}))
	assert.Equal(t, 1, rw.Lags())
	assert.Nil(t, rw.Parameters())
}

func TestRandomWalkResiduals(t *testing.T) {
	y := []float64{1, 3, 4, 2}
	rw := NewRandomWalk()
	require.NoError(t, rw.Train(y))

	assert.Equal(t, []float64{0, 2, 1, -2}, rw.Residuals())
}
