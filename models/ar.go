package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AR is an autoregressive model of order p with intercept, fit by ordinary
// least squares over a lagged design matrix using QR factorization.
type AR struct {
	p         int
	intercept float64
	phi       []float64
	trained   bool
	resid     []float64
}

func NewAR(p int) (*AR, error) {
	if p < 1 {
		return nil, ErrInvalidOrder
	}
	return &AR{p: p}, nil
}

func (a *AR) Train(y []float64) error {
	rows := len(y) - a.p
	if rows < a.p+2 {
		return fmt.Errorf("have %d points for order %d, %w", len(y), a.p, ErrInsufficientData)
	}

	x := mat.NewDense(rows, a.p+1, nil)
	b := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		t := i + a.p
		x.Set(i, 0, 1.0)
		for j := 0; j < a.p; j++ {
			x.Set(i, j+1, y[t-1-j])
		}
		b.SetVec(i, y[t])
	}

	qr := new(mat.QR)
	qr.Factorize(x)

	c := mat.NewDense(a.p+1, 1, nil)
	if err := qr.SolveTo(c, false, b); err != nil {
		return fmt.Errorf("unable to solve least squares for ar coefficients, %w", err)
	}

	intercept := c.At(0, 0)
	phi := make([]float64, a.p)
	for j := 0; j < a.p; j++ {
		phi[j] = c.At(j+1, 0)
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return ErrNonFiniteFit
	}
	for _, v := range phi {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteFit
		}
	}

	a.intercept = intercept
	a.phi = phi
	a.trained = true

	a.resid = make([]float64, len(y))
	for t := 1; t < len(y); t++ {
		p, err := a.Predict(t-1, y)
		if err != nil {
			return err
		}
		a.resid[t] = y[t] - p
	}
	return nil
}

func (a *AR) Predict(t int, y []float64) (float64, error) {
	if err := checkPredict(a.trained, t, y); err != nil {
		return 0, err
	}
	sum := a.intercept
	for j := 0; j < a.p; j++ {
		sum += a.phi[j] * lagVal(y, t-j)
	}
	return sum, nil
}

func (a *AR) Lags() int {
	return a.p
}

func (a *AR) Step(lags, errs []float64) float64 {
	sum := a.intercept
	for j := 0; j < a.p; j++ {
		sum += a.phi[j] * lags[j]
	}
	return sum
}

// Parameters returns the intercept followed by the AR coefficients.
func (a *AR) Parameters() []float64 {
	if !a.trained {
		return nil
	}
	out := make([]float64, 0, a.p+1)
	out = append(out, a.intercept)
	out = append(out, a.phi...)
	return out
}

func (a *AR) Residuals() []float64 {
	return a.resid
}
