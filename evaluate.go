package horizon

import (
	"errors"
	"fmt"

	"github.com/tsforge/go-horizon/forecast"
	"github.com/tsforge/go-horizon/models"
	"github.com/tsforge/go-horizon/stats"
)

// Evaluate trains the model on the full series and scores its in-sample
// forecasts at every horizon 1..maxHorizon. This measures fit rather than
// out-of-sample skill; use a Validator for the latter.
func Evaluate(model models.Model, y []float64, maxHorizon int) (*Report, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if maxHorizon < 1 {
		return nil, ErrInvalidHorizon
	}

	fc, err := forecast.New(model, nil)
	if err != nil {
		return nil, err
	}
	if err := fc.Retrain(y, 0, len(y)); err != nil {
		return nil, fmt.Errorf("unable to train on full series, %w", err)
	}
	mx, err := fc.ForecastAll(y, maxHorizon)
	if err != nil {
		return nil, fmt.Errorf("unable to build forecast matrix, %w", err)
	}

	dfm := float64(len(model.Parameters()))
	diag := stats.NewDiagnostics()

	horizons := make([]HorizonResult, 0, maxHorizon)
	for h := 1; h <= maxHorizon; h++ {
		actual, forecasted, err := forecast.Align(mx, y, h)
		if err != nil {
			return nil, fmt.Errorf("unable to align horizon %d, %w", h, err)
		}

		times := make([]int, len(actual))
		for i := range times {
			times[i] = h + i
		}

		n := len(actual)
		diag.ResetDF(dfm, float64(n)-dfm)
		qof, err := diag.Diagnose(actual, forecasted)
		if err != nil {
			return nil, fmt.Errorf("unable to diagnose horizon %d, %w", h, err)
		}

		res := HorizonResult{
			Horizon:  h,
			QoF:      *qof,
			Time:     times,
			Actual:   actual,
			Forecast: forecasted,
		}
		lower, upper, err := forecast.Interval(actual, forecasted, 0)
		switch {
		case err == nil:
			res.Lower = lower
			res.Upper = upper
		case errors.Is(err, forecast.ErrDegenerateResidual), errors.Is(err, forecast.ErrTooFewResiduals):
		default:
			return nil, fmt.Errorf("unable to compute interval for horizon %d, %w", h, err)
		}
		horizons = append(horizons, res)
	}

	return &Report{
		TrainSize: len(y),
		Horizons:  horizons,
		mx:        mx,
	}, nil
}
