package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"student-repetition-dashboard/app/metrics"
	"student-repetition-dashboard/app/service"
)

func SetupDashboardRoutes(app *fiber.App, svc *service.DashboardService, m *metrics.Registry, opts service.Options) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	// Dashboard interaktif (varian kedua)
	app.Get("/", svc.Dashboard)
	app.Get("/charts/totals.png", svc.TotalsChart)
	if opts.EnableInteractive {
		app.Get("/chart", svc.Chart)
	}

	// Grafik statis + unduhan PDF (varian pertama)
	if opts.EnableStatic {
		app.Get("/static", svc.StaticPage)
		app.Get("/export/pdf", svc.ExportPDF)
	}

	api := app.Group("/api/v1")
	api.Get("/view", svc.GetView)
	api.Get("/records", svc.GetRecords)
}
