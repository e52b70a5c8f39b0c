package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the collectors of the dashboard render passes.
type Registry struct {
	Registry *prometheus.Registry

	Renders        *prometheus.CounterVec
	EmptyResults   prometheus.Counter
	RenderDuration *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := &Registry{
		Registry: prometheus.NewRegistry(),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_render_total",
				Help: "Render passes per page",
			},
			[]string{"page"},
		),
		EmptyResults: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_empty_result_total",
				Help: "Render passes whose filters matched no records",
			},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_render_duration_seconds",
				Help:    "Duration of a render pass in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"page"},
		),
	}

	r.Registry.MustRegister(r.Renders, r.EmptyResults, r.RenderDuration)
	return r
}

// ObserveRender records one render pass of page.
func (r *Registry) ObserveRender(page string, empty bool, started time.Time) {
	if r == nil {
		return
	}
	r.Renders.WithLabelValues(page).Inc()
	if empty {
		r.EmptyResults.Inc()
	}
	r.RenderDuration.WithLabelValues(page).Observe(time.Since(started).Seconds())
}
