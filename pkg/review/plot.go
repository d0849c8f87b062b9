package review

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	plotWidth  = "1200px"
	plotHeight = "500px"
)

// WritePlot renders the score timeline of a completed walk as a
// standalone HTML line chart. The x axis runs in walk order, newest
// commit first.
func WritePlot(timeline []TimelinePoint, toolName string, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: plotWidth, Height: plotHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Quality score across history",
			Subtitle: fmt.Sprintf("tool: %s", toolName),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	labels := make([]string, len(timeline))
	data := make([]opts.LineData, len(timeline))

	for i, point := range timeline {
		labels[i] = strconv.Itoa(point.Iteration)
		data[i] = opts.LineData{
			Value: point.Score,
			Name:  fmt.Sprintf("%s %s", shortHash(point.CommitHash), point.Author),
		}
	}

	line.SetXAxis(labels)
	line.AddSeries("score", data)

	err := line.Render(w)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}
