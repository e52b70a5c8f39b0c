package service_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-repetition-dashboard/app/metrics"
	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/app/repository"
	"student-repetition-dashboard/app/repository/mocks"
	"student-repetition-dashboard/app/service"
	FiberApp "student-repetition-dashboard/fiber"
)

// --- SETUP HELPERS ---

var testOptions = service.Options{
	Title:             "Dashboard de Repitencia Estudiantil",
	EnableInteractive: true,
	EnableStatic:      true,
}

func setupDashboardServiceTest() (*service.DashboardService, *mocks.MockRepetitionRepo) {
	mockRepo := new(mocks.MockRepetitionRepo)
	mockRepo.On("All").Return(repository.NewRepetitionRepository().All()).Once()
	mockRepo.On("Schools").Return(models.AllSchools).Once()

	svc := service.NewDashboardService(mockRepo, metrics.NewRegistry(), testOptions)
	return svc, mockRepo
}

func setupDashboardApp(svc *service.DashboardService) *fiber.App {
	app := FiberApp.SetupFiber("test", zerolog.Nop())
	app.Get("/", svc.Dashboard)
	app.Get("/chart", svc.Chart)
	app.Get("/charts/totals.png", svc.TotalsChart)
	app.Get("/static", svc.StaticPage)
	app.Get("/export/pdf", svc.ExportPDF)
	app.Get("/api/v1/view", svc.GetView)
	app.Get("/api/v1/records", svc.GetRecords)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// --- TEST CASES ---

func TestNewDashboardServiceLoadsDatasetOnce(t *testing.T) {
	svc, mockRepo := setupDashboardServiceTest()
	app := setupDashboardApp(svc)

	doGet(t, app, "/")
	doGet(t, app, "/api/v1/view")
	doGet(t, app, "/api/v1/records")

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "All", 1)
	assert.Len(t, svc.Dataset(), 20)
}

func TestDashboard(t *testing.T) {
	t.Run("Success: defaults", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/")

		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, "Dashboard de Repitencia Estudiantil")
		assert.Contains(t, body, `id="num-schools">5<`)
		assert.Contains(t, body, `id="total-students">2,197<`)
		assert.Contains(t, body, `id="chart"`)
		assert.Contains(t, body, `id="totals"`)
		assert.NotContains(t, body, `id="data-table"`)
		assert.NotContains(t, body, `id="empty-warning"`)
	})

	t.Run("Success: Derecho with table", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		q := url.Values{"school": {"Derecho"}, "table": {"true"}, "submitted": {"1"},
			"level": {"1", "2", "3", "4"}}
		resp, body := doGet(t, app, "/?"+q.Encode())

		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, `id="num-schools">1<`)
		assert.Contains(t, body, `id="total-students">366<`)
		assert.Contains(t, body, `id="data-table"`)
		assert.Contains(t, body, "<td>267</td>")
		assert.NotContains(t, body, "<td>504</td>")
	})

	t.Run("Success: nothing selected shows warning", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/?submitted=1&table=true")

		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, service.EmptyWarning)
		assert.Contains(t, body, `id="num-schools">0<`)
		assert.Contains(t, body, `id="total-students">0<`)
		assert.NotContains(t, body, `id="chart"`)
		assert.NotContains(t, body, "<td>")
	})

	t.Run("Error: invalid level", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, _ := doGet(t, app, "/?level=9")
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestChart(t *testing.T) {
	t.Run("Success: grouped bar page", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/chart?level=1&level=2")

		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, body, "Derecho")
		assert.Contains(t, body, "Repitencia")
	})

	t.Run("Success: empty selection", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/chart?submitted=1")

		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, service.EmptyWarning)
	})
}

func TestTotalsChart(t *testing.T) {
	t.Run("Success: png", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/charts/totals.png?sort=asc")

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.True(t, bytes.HasPrefix([]byte(body), []byte("\x89PNG")))
	})

	t.Run("Success: empty selection has no content", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, _ := doGet(t, app, "/charts/totals.png?submitted=1")
		assert.Equal(t, 204, resp.StatusCode)
	})
}

func TestExportPDF(t *testing.T) {
	t.Run("Error: not generated yet", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, _ := doGet(t, app, "/export/pdf")
		assert.Equal(t, 503, resp.StatusCode)
	})

	t.Run("Success: generated once and downloadable", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)
		dir := t.TempDir()

		path, err := svc.PrepareStaticExport(dir, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "1_Top5.pdf"), path)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(onDisk, []byte("%PDF-")))

		resp, body := doGet(t, app, "/export/pdf")
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="grafico_repitencia.pdf"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, onDisk, []byte(body))

		resp, _ = doGet(t, app, "/export/pdf?inline=1")
		assert.Equal(t, `inline; filename="grafico_repitencia.pdf"`, resp.Header.Get("Content-Disposition"))
	})

	t.Run("Success: static page offers download", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)
		_, err := svc.PrepareStaticExport(t.TempDir(), time.Now())
		require.NoError(t, err)

		resp, body := doGet(t, app, "/static")
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, "Descargar gráfico en PDF")
		assert.Contains(t, body, "73.9%")
	})
}

func TestGetView(t *testing.T) {
	type viewResponse struct {
		Status string             `json:"status"`
		Data   models.DerivedView `json:"data"`
	}

	t.Run("Success: level 1 descending", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/api/v1/view?level=1")
		require.Equal(t, 200, resp.StatusCode)

		var out viewResponse
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.Equal(t, "success", out.Status)
		assert.Equal(t, 1522, out.Data.Metrics.TotalStudents)
		assert.Equal(t, []models.School{
			models.Contabilidad, models.IngenieriaIndustrial, models.Derecho,
			models.GestionTributaria, models.IngenieriaMecanicaFluidos,
		}, out.Data.Order)
	})

	t.Run("Success: percent labels", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		_, body := doGet(t, app, "/api/v1/view?school=Contabilidad&labels=percent")

		var out viewResponse
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		require.NotEmpty(t, out.Data.Bars)
		assert.Equal(t, "73.9%", out.Data.Bars[0].Label)
	})

	t.Run("Success: empty result is not an error", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/api/v1/view?submitted=1&school=Derecho")
		require.Equal(t, 200, resp.StatusCode)

		var out viewResponse
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.True(t, out.Data.Empty)
		assert.Equal(t, 0, out.Data.Metrics.TotalStudents)
	})

	t.Run("Error: validation details", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, body := doGet(t, app, "/api/v1/view?school=Medicina")
		assert.Equal(t, 400, resp.StatusCode)
		assert.Contains(t, body, `"status":"error"`)
		assert.Contains(t, body, "school")
	})

	t.Run("Error: unparsable level", func(t *testing.T) {
		svc, _ := setupDashboardServiceTest()
		app := setupDashboardApp(svc)

		resp, _ := doGet(t, app, "/api/v1/view?level=abc")
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestGetRecords(t *testing.T) {
	svc, _ := setupDashboardServiceTest()
	app := setupDashboardApp(svc)

	resp, body := doGet(t, app, "/api/v1/records")
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data []models.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Len(t, out.Data, 20)
}
