package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ar1Series(n int, phi, mean float64) []float64 {
	y := make([]float64, n)
	y[0] = mean
	for i := 1; i < n; i++ {
		innovation := float64(i%7-3) / 3.0
		y[i] = mean + phi*(y[i-1]-mean) + innovation
	}
	return y
}

func TestACF(t *testing.T) {
	y := ar1Series(300, 0.7, 100)

	acf, err := ACF(y, 3)
	require.NoError(t, err)
	require.Len(t, acf, 4)

	assert.Equal(t, 1.0, acf[0])
	for _, v := range acf {
		assert.LessOrEqual(t, math.Abs(v), 1.0+1e-12)
	}
	// positive autocorrelation decaying with lag
	assert.Greater(t, acf[1], 0.3)
	assert.Greater(t, acf[1], acf[2])
}

func TestACFPreconditions(t *testing.T) {
	_, err := ACF([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidLag)

	_, err = ACF([]float64{1}, 1)
	assert.ErrorIs(t, err, ErrSeriesTooShort)

	_, err = ACF([]float64{5, 5, 5, 5}, 2)
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestYuleWalkerAR1(t *testing.T) {
	y := ar1Series(500, 0.7, 100)

	acf, err := ACF(y, 1)
	require.NoError(t, err)
	phi, err := YuleWalker(acf, 1)
	require.NoError(t, err)
	require.Len(t, phi, 1)

	assert.InDelta(t, acf[1], phi[0], 1e-12)
}

func TestYuleWalkerAR2(t *testing.T) {
	// AR(2) process y[t] = 0.5 y[t-1] + 0.2 y[t-2] + innovation
	n := 2000
	y := make([]float64, n)
	for i := 2; i < n; i++ {
		innovation := float64(i%11-5) / 5.0
		y[i] = 0.5*y[i-1] + 0.2*y[i-2] + innovation
	}

	acf, err := ACF(y, 2)
	require.NoError(t, err)
	phi, err := YuleWalker(acf, 2)
	require.NoError(t, err)
	require.Len(t, phi, 2)

	assert.InDelta(t, 0.5, phi[0], 0.2)
	assert.InDelta(t, 0.2, phi[1], 0.2)
}

func TestYuleWalkerPreconditions(t *testing.T) {
	_, err := YuleWalker([]float64{1, 0.5}, 0)
	assert.ErrorIs(t, err, ErrInvalidLag)

	_, err = YuleWalker([]float64{1, 0.5}, 2)
	assert.ErrorIs(t, err, ErrACFTooShort)
}
