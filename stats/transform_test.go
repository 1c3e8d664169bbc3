package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffUndiffRoundTrip(t *testing.T) {
	y := []float64{1, 3, 4, 2, 5, 7, 9, 8, 6, 3}

	dy, err := Diff(y)
	require.NoError(t, err)
	assert.Len(t, dy, len(y)-1)
	assert.Equal(t, []float64{2, 1, -2, 3, 2, 2, -1, -2, -3}, dy)

	back := Undiff(y[0], dy)
	assert.InDeltaSlice(t, y, back, 1e-12)
}

func TestDiffN(t *testing.T) {
	y := []float64{1, 4, 9, 16, 25}

	d2, err := DiffN(y, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2, 2}, d2, 1e-12)

	same, err := DiffN(y, 0)
	require.NoError(t, err)
	assert.Equal(t, y, same)
}

func TestDiffTooShort(t *testing.T) {
	_, err := Diff([]float64{1})
	assert.ErrorIs(t, err, ErrSeriesTooShort)

	_, err = DiffN([]float64{1, 2}, 2)
	assert.ErrorIs(t, err, ErrSeriesTooShort)
}

func TestSeasonalDiffUndiffRoundTrip(t *testing.T) {
	period := 4
	y := []float64{10, 20, 30, 40, 12, 22, 32, 42, 14, 24, 34, 44}

	dy, err := SeasonalDiff(y, period)
	require.NoError(t, err)
	assert.Len(t, dy, len(y)-period)
	assert.InDeltaSlice(t, []float64{2, 2, 2, 2, 2, 2, 2, 2}, dy, 1e-12)

	back, err := SeasonalUndiff(y[:period], dy, period)
	require.NoError(t, err)
	assert.InDeltaSlice(t, y, back, 1e-12)
}

func TestSeasonalDiffPreconditions(t *testing.T) {
	_, err := SeasonalDiff([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = SeasonalDiff([]float64{1, 2, 3}, 3)
	assert.ErrorIs(t, err, ErrSeriesTooShort)

	_, err = SeasonalUndiff([]float64{1, 2}, []float64{1}, 3)
	assert.ErrorIs(t, err, ErrHeadLenPeriod)
}
