package render

import (
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/utils"
)

var ErrEmptyView = errors.New("render: view has no records")

var totalsColor = drawing.ColorFromHex("4c78a8")

// TotalsPNG draws one bar per school, in view order, with the summed
// students of the filtered subset.
func TotalsPNG(w io.Writer, view models.DerivedView) error {
	if view.Empty || len(view.Order) == 0 {
		return ErrEmptyView
	}

	max := 0
	bars := make([]chart.Value, 0, len(view.Order))
	for _, s := range view.Order {
		total := view.Totals[s]
		if total > max {
			max = total
		}
		bars = append(bars, chart.Value{
			Label: string(s),
			Value: float64(total),
			Style: chart.Style{
				FillColor:   totalsColor,
				StrokeColor: totalsColor,
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title:      "Total de estudiantes por escuela",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Width:      900,
		Height:     420,
		BarWidth:   90,
		YAxis: chart.YAxis{
			Name:  "Estudiantes",
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeil(float64(max), 5)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return utils.FormatThousands(int(f))
				}
				return ""
			},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
