// Package models is a collection of one-step forecasting model
// implementations satisfying the contract consumed by the recursive
// forecasting engine.
package models

// Model is the contract a one-step forecasting model must satisfy to be
// driven by the recursive forecasting engine. Predict(t, y) returns the
// forecast of y[t+1] using only values at or before index t, and the engine
// relies on exactly that no-lookahead property. Step applies the same
// one-step rule to a window of prior values supplied by the engine during
// diagonal recursion, with lags[0] the most recent value and errs the
// one-step errors aligned to the same lag positions (zero where the lag lies
// beyond the forecast origin).
type Model interface {
	Train(y []float64) error
	Predict(t int, y []float64) (float64, error)
	Lags() int
	Step(lags, errs []float64) float64
	Parameters() []float64
	Residuals() []float64
}

// lagVal indexes y with the start of history repeating backward, so a lag
// reference before the first observation resolves to y[0].
func lagVal(y []float64, i int) float64 {
	if i < 0 {
		i = 0
	}
	return y[i]
}

func checkPredict(trained bool, t int, y []float64) error {
	if !trained {
		return ErrUntrainedModel
	}
	if t < 0 || t >= len(y) {
		return ErrIndexOutOfRange
	}
	return nil
}
