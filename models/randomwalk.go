package models

// RandomWalk forecasts the next value as the current value. It has no fitted
// parameters and serves as the baseline every other model is measured
// against.
type RandomWalk struct {
	trained bool
	resid   []float64
}

func NewRandomWalk() *RandomWalk {
	return &RandomWalk{}
}

func (rw *RandomWalk) Train(y []float64) error {
	if len(y) < 1 {
		return ErrInsufficientData
	}
	rw.resid = make([]float64, len(y))
	for t := 1; t < len(y); t++ {
		rw.resid[t] = y[t] - y[t-1]
	}
	rw.trained = true
	return nil
}

func (rw *RandomWalk) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(rw.trained, t, y); err != nil {
		return 0, err
	}
	return y[t], nil
}

func (rw *RandomWalk) Lags() int {
	return 1
}

func (rw *RandomWalk) Step(lags, errs []float64) float64 {
	return lags[0]
}

func (rw *RandomWalk) Parameters() []float64 {
	return nil
}

func (rw *RandomWalk) Residuals() []float64 {
	return rw.resid
}
