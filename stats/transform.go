package stats

import (
	"errors"
	"fmt"
)

var (
	ErrSeriesTooShort = errors.New("series too short to difference")
	ErrInvalidPeriod  = errors.New("seasonal period must be at least 1")
	ErrHeadLenPeriod  = errors.New("head length does not match seasonal period")
)

// Diff returns the first difference of y, one element shorter than the input.
func Diff(y []float64) ([]float64, error) {
	if len(y) < 2 {
		return nil, fmt.Errorf("have %d points, %w", len(y), ErrSeriesTooShort)
	}
	dy := make([]float64, len(y)-1)
	for i := 1; i < len(y); i++ {
		dy[i-1] = y[i] - y[i-1]
	}
	return dy, nil
}

// Undiff reverses Diff given the first value of the original series. The
// result is one element longer than dy and Undiff(y[0], Diff(y)) recovers y.
func Undiff(y0 float64, dy []float64) []float64 {
	y := make([]float64, len(dy)+1)
	y[0] = y0
	for i := 0; i < len(dy); i++ {
		y[i+1] = y[i] + dy[i]
	}
	return y
}

// DiffN applies d iterated first differences, shrinking the series by d.
func DiffN(y []float64, d int) ([]float64, error) {
	out := y
	for i := 0; i < d; i++ {
		var err error
		out, err = Diff(out)
		if err != nil {
			return nil, fmt.Errorf("difference pass %d, %w", i+1, err)
		}
	}
	return out, nil
}

// SeasonalDiff returns the lag-period difference of y, period elements
// shorter than the input.
func SeasonalDiff(y []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, ErrInvalidPeriod
	}
	if len(y) <= period {
		return nil, fmt.Errorf("have %d points with period %d, %w", len(y), period, ErrSeriesTooShort)
	}
	dy := make([]float64, len(y)-period)
	for i := period; i < len(y); i++ {
		dy[i-period] = y[i] - y[i-period]
	}
	return dy, nil
}

// SeasonalUndiff reverses SeasonalDiff given the first period values of the
// original series.
func SeasonalUndiff(head, dy []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, ErrInvalidPeriod
	}
	if len(head) != period {
		return nil, fmt.Errorf("head has %d values for period %d, %w", len(head), period, ErrHeadLenPeriod)
	}
	y := make([]float64, len(dy)+period)
	copy(y, head)
	for i := 0; i < len(dy); i++ {
		y[i+period] = y[i] + dy[i]
	}
	return y, nil
}
