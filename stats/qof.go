// Package stats provides quality-of-fit diagnostics and series transforms
// used by the forecasting engine and its rolling validator.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrResLenMismatch = errors.New("forecast and actual have different lengths")
	ErrNoObservations = errors.New("no observations to diagnose")
	ErrDFNotSet       = errors.New("degrees of freedom not set, call ResetDF before Diagnose")
	ErrNonFiniteValue = errors.New("non-finite value in diagnostic input")
	ErrZeroVariance   = errors.New("actual values have zero variance")
)

// QoF holds the quality-of-fit statistics of one horizon. A record is
// created fresh by each Diagnose call and never mutated afterwards.
type QoF struct {
	N     int     `json:"n"`
	DFM   float64 `json:"df_model"`
	DF    float64 `json:"df_error"`
	SSE   float64 `json:"sse"`
	SST   float64 `json:"sst"`
	MSE   float64 `json:"mse"`
	RMSE  float64 `json:"rmse"`
	MAE   float64 `json:"mae"`
	MAPE  float64 `json:"mape"`
	R2    float64 `json:"r_squared"`
	R2Bar float64 `json:"r_squared_adj"`
}

// Diagnostics computes QoF records with degrees-of-freedom adjusted error
// statistics. The degrees of freedom depend on how much history the current
// retrain window or lag order consumed, so ResetDF must be called before
// Diagnose whenever the model or window changes.
type Diagnostics struct {
	dfm   float64
	df    float64
	dfSet bool
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// ResetDF establishes the model degrees of freedom (number of fitted
// parameters) and the error degrees of freedom (observations minus
// parameters) used by subsequent Diagnose calls.
func (d *Diagnostics) ResetDF(dfm, df float64) {
	d.dfm = dfm
	d.df = df
	d.dfSet = true
}

// Diagnose computes the sum-of-squared-error based statistics for aligned
// actual and forecast values. Non-finite inputs are rejected rather than
// propagated through the downstream statistics.
func (d *Diagnostics) Diagnose(actual, forecast []float64) (*QoF, error) {
	if !d.dfSet {
		return nil, ErrDFNotSet
	}
	if len(actual) != len(forecast) {
		return nil, fmt.Errorf("expected %d forecasts, but got %d, %w", len(actual), len(forecast), ErrResLenMismatch)
	}
	if len(actual) == 0 {
		return nil, ErrNoObservations
	}
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsInf(actual[i], 0) {
			return nil, fmt.Errorf("actual at index %d, %w", i, ErrNonFiniteValue)
		}
		if math.IsNaN(forecast[i]) || math.IsInf(forecast[i], 0) {
			return nil, fmt.Errorf("forecast at index %d, %w", i, ErrNonFiniteValue)
		}
	}

	n := len(actual)
	mean := stat.Mean(actual, nil)

	var sse, sst, mae, mape float64
	for i := 0; i < n; i++ {
		e := actual[i] - forecast[i]
		sse += e * e
		dev := actual[i] - mean
		sst += dev * dev
		mae += math.Abs(e)
		if actual[i] != 0 {
			mape += math.Abs(e / actual[i])
		}
	}
	if sst == 0 && sse > 0 {
		return nil, ErrZeroVariance
	}

	mse := sse / float64(n)
	if d.df > 0 {
		mse = sse / d.df
	}

	r2 := 1.0
	if sst > 0 {
		r2 = 1.0 - sse/sst
	}
	r2Bar := r2
	if d.df > 0 && n > 1 {
		r2Bar = 1.0 - (1.0-r2)*float64(n-1)/d.df
	}

	return &QoF{
		N:     n,
		DFM:   d.dfm,
		DF:    d.df,
		SSE:   sse,
		SST:   sst,
		MSE:   mse,
		RMSE:  math.Sqrt(mse),
		MAE:   mae / float64(n),
		MAPE:  mape / float64(n),
		R2:    r2,
		R2Bar: r2Bar,
	}, nil
}
