package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"bus-arrival-server/models"
)

// absentBar renders as a gap in echarts.
const absentBar = "-"

// PlotArrivalEtas renders a grouped bar chart of the ETA minutes of each row:
// the next arrival and up to two subsequent ones.
func PlotArrivalEtas(w io.Writer, stopID string, rows []models.DisplayRow) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("Bus Stop %s Arrivals", stopID),
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Bus Stop %s", stopID),
			Subtitle: "Minutes until arrival",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "min"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	numbers := make([]string, 0, len(rows))
	next := make([]opts.BarData, 0, len(rows))
	second := make([]opts.BarData, 0, len(rows))
	third := make([]opts.BarData, 0, len(rows))

	for _, row := range rows {
		numbers = append(numbers, row.Number)
		next = append(next, opts.BarData{Value: max(row.NextMinutes, 0)})
		second = append(second, subsequentBar(row, 0))
		third = append(third, subsequentBar(row, 1))
	}

	bar.SetXAxis(numbers).
		AddSeries("Next", next).
		AddSeries("Subsequent", second).
		AddSeries("Following", third)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render arrivals chart: %w", err)
	}
	return nil
}

func subsequentBar(row models.DisplayRow, i int) opts.BarData {
	if i >= len(row.Subsequent) {
		return opts.BarData{Value: absentBar}
	}
	return opts.BarData{Value: max(row.Subsequent[i].Minutes, 0)}
}
