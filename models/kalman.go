package models

// LocalLevel is a one-dimensional Kalman filter over a local-level state
// space: the latent level follows a random walk with process variance q and
// observations carry measurement variance r. One-step forecasts are the
// filtered level, and multi-horizon forecasts are flat.
type LocalLevel struct {
	q, r float64

	trained bool
	resid   []float64
}

// NewLocalLevel creates a local-level filter with the given process and
// measurement noise variances.
func NewLocalLevel(processVar, measurementVar float64) (*LocalLevel, error) {
	if processVar <= 0 || measurementVar <= 0 {
		return nil, ErrInvalidVariance
	}
	return &LocalLevel{q: processVar, r: measurementVar}, nil
}

func (ll *LocalLevel) Train(y []float64) error {
	if len(y) < 1 {
		return ErrInsufficientData
	}
	ll.trained = true
	ll.resid = make([]float64, len(y))
	ll.filter(y, ll.resid)
	return nil
}

// filter runs the predict/update recursion over y and returns the filtered
// level after the final observation. When innovations is non-nil it receives
// the pre-update innovation at each step.
func (ll *LocalLevel) filter(y []float64, innovations []float64) float64 {
	mu := y[0]
	p := 1.0
	for t := 0; t < len(y); t++ {
		// predict: level is a random walk, uncertainty grows by q
		p += ll.q

		innovation := y[t] - mu
		if innovations != nil {
			innovations[t] = innovation
		}

		// update with gain p / (p + r)
		k := p / (p + ll.r)
		mu += k * innovation
		p *= 1 - k
	}
	return mu
}

func (ll *LocalLevel) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(ll.trained, t, y); err != nil {
		return 0, err
	}
	return ll.filter(y[:t+1], nil), nil
}

func (ll *LocalLevel) Lags() int {
	return 1
}

func (ll *LocalLevel) Step(lags, errs []float64) float64 {
	return lags[0]
}

// Parameters returns the noise variances defining the state space.
func (ll *LocalLevel) Parameters() []float64 {
	return []float64{ll.q, ll.r}
}

func (ll *LocalLevel) Residuals() []float64 {
	return ll.resid
}
