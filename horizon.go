// Package horizon provides walk-forward (rolling) validation and in-sample
// evaluation of one-step forecasting models driven through the multi-horizon
// recursive forecasting engine.
package horizon

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsforge/go-horizon/forecast"
	"github.com/tsforge/go-horizon/models"
	"github.com/tsforge/go-horizon/stats"
	"go.uber.org/zap"
)

var (
	ErrNoModel            = errors.New("no one-step model provided")
	ErrSeriesTooShort     = errors.New("series too short to split into train and test windows")
	ErrInvalidFraction    = errors.New("test fraction must be in (0, 1)")
	ErrInvalidCycle       = errors.New("retrain cycle must be at least 1")
	ErrInvalidHorizon     = errors.New("max horizon must be at least 1")
	ErrHorizonExceedsTest = errors.New("max horizon exceeds test window")
	ErrAlignment          = errors.New("actual and forecast alignment mismatch")
)

// DefaultTestFraction is the share of the series held out for validation
// when no explicit test size is configured.
const DefaultTestFraction = 0.2

// Options configures a Validator.
type Options struct {
	// TestFraction is the held-out share of the series, rounded up.
	TestFraction float64
	// TestSize overrides TestFraction with an explicit held-out length.
	TestSize int
	// RetrainCycle retrains the model every RetrainCycle steps of the
	// walk-forward loop.
	RetrainCycle int
	// MaxHorizon is the deepest horizon validated.
	MaxHorizon int
	// Confidence is the prediction interval confidence level; zero selects
	// the engine default.
	Confidence float64
	// Logger receives walk-forward progress. Defaults to a nop logger.
	Logger *zap.Logger
}

func NewDefaultOptions() *Options {
	return &Options{
		TestFraction: DefaultTestFraction,
		RetrainCycle: 1,
		MaxHorizon:   1,
	}
}

// Validator slides a training/testing boundary through a series, retraining
// the model on a fixed-size window every retrain cycle and forecasting every
// horizon out-of-sample. The fixed-size (not growing) window deliberately
// favors recency over full history, trading bias for adaptivity to regime
// change.
type Validator struct {
	model  models.Model
	opt    *Options
	logger *zap.Logger
}

// NewValidator creates a Validator for the given model. If no options are
// provided a default is used.
func NewValidator(model models.Model, opt *Options) (*Validator, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.TestFraction == 0 {
		opt.TestFraction = DefaultTestFraction
	}
	if opt.TestFraction < 0 || opt.TestFraction >= 1 {
		return nil, fmt.Errorf("fraction %f, %w", opt.TestFraction, ErrInvalidFraction)
	}
	if opt.RetrainCycle == 0 {
		opt.RetrainCycle = 1
	}
	if opt.RetrainCycle < 1 {
		return nil, ErrInvalidCycle
	}
	if opt.MaxHorizon == 0 {
		opt.MaxHorizon = 1
	}
	if opt.MaxHorizon < 1 {
		return nil, ErrInvalidHorizon
	}

	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{model: model, opt: opt, logger: logger}, nil
}

// Validate runs the walk-forward loop over y and returns the per-horizon
// quality-of-fit report. An error during any retrain or forecast step aborts
// the whole run, since later steps depend on matrix continuity.
func (v *Validator) Validate(y []float64) (*Report, error) {
	m := len(y)
	testSize := v.opt.TestSize
	if testSize == 0 {
		testSize = int(math.Ceil(float64(m) * v.opt.TestFraction))
	}
	trainSize := m - testSize
	if testSize < 1 || trainSize < 1 {
		return nil, fmt.Errorf("%d points split into train %d and test %d, %w", m, trainSize, testSize, ErrSeriesTooShort)
	}
	hMax := v.opt.MaxHorizon
	if hMax > testSize {
		return nil, fmt.Errorf("max horizon %d with test window %d, %w", hMax, testSize, ErrHorizonExceedsTest)
	}

	fc, err := forecast.New(v.model, nil)
	if err != nil {
		return nil, err
	}

	// initial fit on the training window, then an in-sample matrix over the
	// entire series as scratch space the rolling loop overwrites
	if err := fc.Retrain(y, 0, trainSize); err != nil {
		return nil, fmt.Errorf("unable to fit initial training window, %w", err)
	}
	mx, err := fc.ForecastAll(y, hMax)
	if err != nil {
		return nil, fmt.Errorf("unable to build initial forecast matrix, %w", err)
	}

	retrains := 0
	for i := 0; i < testSize; i++ {
		t := trainSize + i
		if i%v.opt.RetrainCycle == 0 {
			if err := fc.Retrain(y, i, t); err != nil {
				return nil, fmt.Errorf("validation aborted at step %d, %w", i, err)
			}
			retrains++
			v.logger.Debug("retrained model",
				zap.Int("step", i),
				zap.Int("window_start", i),
				zap.Int("window_end", t),
			)
		}
		if _, err := fc.Forecast(mx, y, t-1, hMax); err != nil {
			return nil, fmt.Errorf("validation aborted at step %d, %w", i, err)
		}
	}

	horizons, err := v.diagnoseHorizons(mx, y, trainSize, testSize, hMax)
	if err != nil {
		return nil, err
	}

	v.logger.Debug("validation complete",
		zap.Int("train_size", trainSize),
		zap.Int("test_size", testSize),
		zap.Int("retrains", retrains),
		zap.Int("max_horizon", hMax),
	)

	return &Report{
		TrainSize:    trainSize,
		TestSize:     testSize,
		RetrainCycle: v.opt.RetrainCycle,
		Retrains:     retrains,
		Horizons:     horizons,
		mx:           mx,
	}, nil
}

// diagnoseHorizons aligns actual against forecast per horizon over the test
// window and computes one QoF record per horizon. Horizon h drops its first
// h-1 test points, which have no out-of-sample forecast.
func (v *Validator) diagnoseHorizons(mx *forecast.Matrix, y []float64, trainSize, testSize, hMax int) ([]HorizonResult, error) {
	m := len(y)
	dfm := float64(len(v.model.Parameters()))
	diag := stats.NewDiagnostics()

	horizons := make([]HorizonResult, 0, hMax)
	for h := 1; h <= hMax; h++ {
		lo := trainSize + h - 1

		times := make([]int, 0, m-lo)
		actual := make([]float64, 0, m-lo)
		forecasted := make([]float64, 0, m-lo)
		for t := lo; t < m; t++ {
			val, err := mx.At(t, h)
			if err != nil {
				return nil, err
			}
			times = append(times, t)
			actual = append(actual, y[t])
			forecasted = append(forecasted, val)
		}
		if len(actual) != testSize-(h-1) {
			return nil, fmt.Errorf("horizon %d has %d aligned points, expected %d, %w", h, len(actual), testSize-(h-1), ErrAlignment)
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
		lower, upper, err := forecast.Interval(actual, forecasted, v.opt.Confidence)
		switch {
		case err == nil:
			res.Lower = lower
			res.Upper = upper
		case errors.Is(err, forecast.ErrDegenerateResidual), errors.Is(err, forecast.ErrTooFewResiduals):
			// a perfect or single-point fit has no dispersion to band
		default:
			return nil, fmt.Errorf("unable to compute interval for horizon %d, %w", h, err)
		}
		horizons = append(horizons, res)
	}
	return horizons, nil
}
