package charts

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cqv/internal/domain"
)

// statusColor maps each status to its chart fill
func statusColor(status domain.Status) drawing.Color {
	switch status {
	case domain.StatusPass:
		return chart.ColorGreen
	case domain.StatusFail:
		return chart.ColorRed
	case domain.StatusSkip:
		return chart.ColorLightGray
	case domain.StatusError:
		return chart.ColorOrange
	default:
		return chart.ColorAlternateGray
	}
}

// RenderStatusDonut writes a PNG donut of the summary series to w. Points
// with a zero count are left out so go-chart does not draw empty slices;
// an all-zero summary is an error.
func RenderStatusDonut(points []StatusPoint, title string, w io.Writer) error {
	total := 0
	for _, p := range points {
		total += p.Count
	}
	if total == 0 {
		return fmt.Errorf("render status donut: summary has no counts")
	}

	var values []chart.Value
	for _, p := range points {
		if p.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %d (%s)", p.Label, p.Count, FormatPercent(p.Count, total)),
			Value: float64(p.Count),
			Style: chart.Style{FillColor: statusColor(p.Status)},
		})
	}

	donut := chart.DonutChart{
		Title:  title,
		Width:  600,
		Height: 400,
		Values: values,
	}
	if err := donut.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render status donut: %w", err)
	}
	return nil
}

// RenderGroupBars writes a PNG stacked bar chart of the per-group series
// to w: one bar per group, one stacked value per status present in that
// group.
func RenderGroupBars(rows []GroupRow, title string, w io.Writer) error {
	if len(rows) == 0 {
		return fmt.Errorf("render group bars: no groups to chart")
	}

	var bars []chart.StackedBar
	for _, row := range rows {
		var values []chart.Value
		for _, status := range domain.KnownStatuses {
			count := row.Counts[status]
			if count == 0 {
				continue
			}
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s %d", status, count),
				Value: float64(count),
				Style: chart.Style{FillColor: statusColor(status)},
			})
		}
		bars = append(bars, chart.StackedBar{Name: row.Group, Values: values})
	}

	sb := chart.StackedBarChart{
		Title:      title,
		Width:      1000,
		Height:     500,
		BarSpacing: 40,
		XAxis:      chart.Style{FontSize: 8},
		Bars:       bars,
	}
	if err := sb.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render group bars: %w", err)
	}
	return nil
}
