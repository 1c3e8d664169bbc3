package horizon

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary
// time/value combination. Each series in y must have the same length as the
// input time slice.
func LineTSeries(title string, seriesName []string, t []int, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// LineHorizon generates a line chart of actual against forecast values for a
// single horizon result, including the interval bounds when present.
func LineHorizon(res HorizonResult) *charts.Line {
	names := []string{"Actual", "Forecast"}
	series := [][]float64{res.Actual, res.Forecast}
	if res.Lower != nil && res.Upper != nil {
		names = append(names, "Lower", "Upper")
		series = append(series, res.Lower, res.Upper)
	}
	return LineTSeries(fmt.Sprintf("Horizon %d", res.Horizon), names, res.Time, series)
}

// PlotValidation uses the Apache Echarts library to generate an html file
// with one actual-versus-forecast chart per validated horizon.
func (r *Report) PlotValidation(path string) error {
	page := components.NewPage()
	for _, hr := range r.Horizons {
		page.AddCharts(LineHorizon(hr))
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
