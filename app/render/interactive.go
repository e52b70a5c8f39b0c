package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	models "student-repetition-dashboard/app/models"
)

type ChartOptions struct {
	Title      string
	AssetsHost string
	Width      string
	Height     string
}

// InteractiveChart builds the grouped bar chart of the dashboard:
// x-axis = ordered schools, one series per selected level.
func InteractiveChart(view models.DerivedView, o ChartOptions) *charts.Bar {
	if o.Width == "" {
		o.Width = "100%"
	}
	if o.Height == "" {
		o.Height = "480px"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  o.Title,
			Width:      o.Width,
			Height:     o.Height,
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Escuela Profesional"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Estudiantes"}),
	)

	categories := make([]string, 0, len(view.Order))
	for _, s := range view.Order {
		categories = append(categories, string(s))
	}
	bar.SetXAxis(categories)

	for _, level := range models.AllLevels {
		if !view.Filter.HasLevel(level) {
			continue
		}
		data := make([]opts.BarData, 0, len(view.Order))
		for _, s := range view.Order {
			item := opts.BarData{Name: string(s)}
			for _, b := range view.BarsFor(s) {
				if b.Level == level {
					item.Value = b.Students
				}
			}
			data = append(data, item)
		}
		bar.AddSeries(models.LevelName(level), data,
			charts.WithLabelOpts(opts.Label{Show: true, Position: "top"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: models.LevelColor(level)}),
		)
	}
	return bar
}

// WriteInteractivePage renders the chart as a standalone HTML page.
func WriteInteractivePage(w io.Writer, view models.DerivedView, o ChartOptions) error {
	return InteractiveChart(view, o).Render(w)
}
