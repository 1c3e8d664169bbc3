package horizon

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tsforge/go-horizon/forecast"
	"github.com/tsforge/go-horizon/stats"
)

// HorizonResult carries the quality-of-fit record and the aligned
// (time, actual, forecast) triples for one horizon. Lower and Upper are the
// prediction interval bounds when the residual dispersion supports them.
type HorizonResult struct {
	Horizon  int       `json:"horizon"`
	QoF      stats.QoF `json:"qof"`
	Time     []int     `json:"time"`
	Actual   []float64 `json:"actual"`
	Forecast []float64 `json:"forecast"`
	Lower    []float64 `json:"lower,omitempty"`
	Upper    []float64 `json:"upper,omitempty"`
}

// Report tabulates validation or evaluation results per horizon.
type Report struct {
	TrainSize    int             `json:"train_size"`
	TestSize     int             `json:"test_size,omitempty"`
	RetrainCycle int             `json:"retrain_cycle,omitempty"`
	Retrains     int             `json:"retrains,omitempty"`
	Horizons     []HorizonResult `json:"horizons"`

	mx *forecast.Matrix
}

// Matrix returns the filled forecast matrix for inspection and debugging.
func (r *Report) Matrix() *forecast.Matrix {
	return r.mx
}

// JSON serializes the report.
func (r *Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// TableString renders the horizon by statistic table.
func (r *Report) TableString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%7s %5s %12s %12s %12s %12s %8s %8s %8s\n",
		"horizon", "n", "sse", "mse", "rmse", "mae", "mape", "r2", "r2_adj")
	for _, hr := range r.Horizons {
		q := hr.QoF
		fmt.Fprintf(&b, "%7d %5d %12.4f %12.4f %12.4f %12.4f %8.4f %8.4f %8.4f\n",
			hr.Horizon, q.N, q.SSE, q.MSE, q.RMSE, q.MAE, q.MAPE, q.R2, q.R2Bar)
	}
	return b.String()
}
