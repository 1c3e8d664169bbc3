package models

import (
	"math"
)

const weightTolerance = 1e-9

// SimpleMovingAverage forecasts the next value as the unweighted mean of the
// last q observations. Lag references before the first observation repeat
// the first value.
type SimpleMovingAverage struct {
	q       int
	trained bool
	resid   []float64
}

func NewSimpleMovingAverage(q int) (*SimpleMovingAverage, error) {
	if q < 1 {
		return nil, ErrInvalidOrder
	}
	return &SimpleMovingAverage{q: q}, nil
}

func (s *SimpleMovingAverage) Train(y []float64) error {
	if len(y) < s.q {
		return ErrInsufficientData
	}
	s.trained = true
	s.resid = make([]float64, len(y))
	for t := 1; t < len(y); t++ {
		p, err := s.Predict(t-1, y)
		if err != nil {
			return err
		}
		s.resid[t] = y[t] - p
	}
	return nil
}

func (s *SimpleMovingAverage) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(s.trained, t, y); err != nil {
		return 0, err
	}
	var sum float64
	for j := 0; j < s.q; j++ {
		sum += lagVal(y, t-j)
	}
	return sum / float64(s.q), nil
}

func (s *SimpleMovingAverage) Lags() int {
	return s.q
}

func (s *SimpleMovingAverage) Step(lags, errs []float64) float64 {
	var sum float64
	for j := 0; j < s.q; j++ {
		sum += lags[j]
	}
	return sum / float64(s.q)
}

func (s *SimpleMovingAverage) Parameters() []float64 {
	return nil
}

func (s *SimpleMovingAverage) Residuals() []float64 {
	return s.resid
}

// WeightedMovingAverage forecasts the next value as a weighted mean of the
// last observations with weights[0] applied to the most recent. Weights not
// summing to one are normalized at construction.
type WeightedMovingAverage struct {
	weights []float64
	trained bool
	resid   []float64
}

func NewWeightedMovingAverage(weights []float64) (*WeightedMovingAverage, error) {
	if len(weights) == 0 {
		return nil, ErrNoWeights
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum) < weightTolerance {
		return nil, ErrZeroWeightSum
	}

	normalized := make([]float64, len(weights))
	copy(normalized, weights)
	if math.Abs(sum-1.0) > weightTolerance {
		for i := range normalized {
			normalized[i] /= sum
		}
	}
	return &WeightedMovingAverage{weights: normalized}, nil
}

func (w *WeightedMovingAverage) Train(y []float64) error {
	if len(y) < len(w.weights) {
		return ErrInsufficientData
	}
	w.trained = true
	w.resid = make([]float64, len(y))
	for t := 1; t < len(y); t++ {
		p, err := w.Predict(t-1, y)
		if err != nil {
			return err
		}
		w.resid[t] = y[t] - p
	}
	return nil
}

func (w *WeightedMovingAverage) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(w.trained, t, y); err != nil {
		return 0, err
	}
	var sum float64
	for j, wj := range w.weights {
		sum += wj * lagVal(y, t-j)
	}
	return sum, nil
}

func (w *WeightedMovingAverage) Lags() int {
	return len(w.weights)
}

func (w *WeightedMovingAverage) Step(lags, errs []float64) float64 {
	var sum float64
	for j, wj := range w.weights {
		sum += wj * lags[j]
	}
	return sum
}

func (w *WeightedMovingAverage) Parameters() []float64 {
	out := make([]float64, len(w.weights))
	copy(out, w.weights)
	return out
}

func (w *WeightedMovingAverage) Residuals() []float64 {
	return w.resid
}
