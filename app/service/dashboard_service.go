package service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"student-repetition-dashboard/app/metrics"
	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/app/render"
	"student-repetition-dashboard/app/repository"
	"student-repetition-dashboard/middleware"
	"student-repetition-dashboard/utils"
)

const EmptyWarning = "No hay datos para los filtros seleccionados."

type Options struct {
	Title             string
	AssetsHost        string
	EnableInteractive bool
	EnableStatic      bool
}

type DashboardService struct {
	data    models.Dataset
	schools []models.School
	metrics *metrics.Registry
	opts    Options

	staticPDF  []byte
	staticPath string
}

// NewDashboardService membaca dataset sekali saja; semua render pass memakai
// salinan yang sama.
func NewDashboardService(repo repository.RepetitionRepository, m *metrics.Registry, opts Options) *DashboardService {
	return &DashboardService{
		data:    repo.All(),
		schools: repo.Schools(),
		metrics: m,
		opts:    opts,
	}
}

func (s *DashboardService) Dataset() models.Dataset {
	return s.data
}

// PrepareStaticExport merender grafik statis sekali lalu menyimpannya di dir.
// Harus dipanggil sebelum server menerima request.
func (s *DashboardService) PrepareStaticExport(dir string, now time.Time) (string, error) {
	var buf bytes.Buffer
	view := StaticView(s.data)
	if err := render.StaticPDF(&buf, view, render.StaticOptions{Title: s.opts.Title, Created: now}); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, render.PDFFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	s.staticPDF = buf.Bytes()
	s.staticPath = path
	return path, nil
}

func (s *DashboardService) parseFilter(c *fiber.Ctx) (models.FilterState, models.LabelMode, error) {
	var q models.FilterQuery
	if err := c.QueryParser(&q); err != nil {
		return models.FilterState{}, "", fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return ParseFilter(q)
}

func (s *DashboardService) buildView(c *fiber.Ctx, page string, filter models.FilterState, mode models.LabelMode) models.DerivedView {
	started := time.Now()
	view := BuildView(s.data, filter, mode)
	s.metrics.ObserveRender(page, view.Empty, started)

	ev := log.Debug()
	if view.Empty {
		ev = log.Info()
	}
	ev.Str("request_id", middleware.RequestID(c)).
		Str("page", page).
		Int("schools", len(filter.Schools)).
		Int("levels", len(filter.Levels)).
		Int("records", len(view.Records)).
		Bool("empty", view.Empty).
		Msg("render pass")
	return view
}

// EncodeFilter mengubah FilterState kembali menjadi query string.
func EncodeFilter(f models.FilterState) string {
	q := url.Values{}
	for _, sch := range f.Schools {
		q.Add("school", string(sch))
	}
	for _, l := range f.Levels {
		q.Add("level", strconv.Itoa(l))
	}
	if f.Descending {
		q.Set("sort", "desc")
	} else {
		q.Set("sort", "asc")
	}
	q.Set("table", strconv.FormatBool(f.ShowTable))
	q.Set("submitted", "1")
	return q.Encode()
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// === GET / ===
func (s *DashboardService) Dashboard(c *fiber.Ctx) error {
	// 1. Baca filter dari sidebar
	filter, _, err := s.parseFilter(c)
	if err != nil {
		return utils.ValidationError(c, err)
	}

	// 2. Hitung ulang view
	view := s.buildView(c, "dashboard", filter, models.LabelValue)

	// 3. Opsi form
	schools := make([]option, 0, len(s.schools))
	for _, sch := range s.schools {
		schools = append(schools, option{Value: string(sch), Label: string(sch), Selected: filter.HasSchool(sch)})
	}
	levels := make([]option, 0, len(models.AllLevels))
	for _, l := range models.AllLevels {
		levels = append(levels, option{Value: strconv.Itoa(l), Label: models.LevelName(l), Selected: filter.HasLevel(l)})
	}

	query := EncodeFilter(filter)
	return c.Render("dashboard", fiber.Map{
		"Title":       s.opts.Title,
		"View":        view,
		"Schools":     schools,
		"Levels":      levels,
		"Warning":     EmptyWarning,
		"Interactive": s.opts.EnableInteractive,
		"Static":      s.opts.EnableStatic,
		"ChartURL":    template.URL("/chart?" + query),
		"TotalsURL":   template.URL("/charts/totals.png?" + query),
	})
}

// === GET /chart ===
func (s *DashboardService) Chart(c *fiber.Ctx) error {
	filter, _, err := s.parseFilter(c)
	if err != nil {
		return utils.ValidationError(c, err)
	}

	view := s.buildView(c, "chart", filter, models.LabelValue)
	c.Type("html", "utf-8")
	if view.Empty {
		return c.SendString("<p>" + template.HTMLEscapeString(EmptyWarning) + "</p>")
	}

	var buf bytes.Buffer
	err = render.WriteInteractivePage(&buf, view, render.ChartOptions{
		Title:      s.opts.Title,
		AssetsHost: s.opts.AssetsHost,
	})
	if err != nil {
		return err
	}
	return c.Send(buf.Bytes())
}

// === GET /charts/totals.png ===
func (s *DashboardService) TotalsChart(c *fiber.Ctx) error {
	filter, _, err := s.parseFilter(c)
	if err != nil {
		return utils.ValidationError(c, err)
	}

	view := s.buildView(c, "totals", filter, models.LabelValue)
	if view.Empty {
		return c.SendStatus(fiber.StatusNoContent)
	}

	var buf bytes.Buffer
	if err := render.TotalsPNG(&buf, view); err != nil {
		return err
	}
	c.Type("png")
	return c.Send(buf.Bytes())
}

// === GET /static ===
func (s *DashboardService) StaticPage(c *fiber.Ctx) error {
	started := time.Now()
	view := StaticView(s.data)
	s.metrics.ObserveRender("static", view.Empty, started)

	return c.Render("static", fiber.Map{
		"Title":     s.opts.Title,
		"View":      view,
		"HasExport": s.staticPDF != nil,
	})
}

// === GET /export/pdf ===
func (s *DashboardService) ExportPDF(c *fiber.Ctx) error {
	if s.staticPDF == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "static export not generated")
	}

	disposition := "attachment"
	if c.QueryBool("inline") {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, render.PDFMimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, render.PDFDownloadName))
	return c.Send(s.staticPDF)
}

// === GET /api/v1/view ===
func (s *DashboardService) GetView(c *fiber.Ctx) error {
	filter, mode, err := s.parseFilter(c)
	if err != nil {
		return utils.ValidationError(c, err)
	}
	return utils.Success(c, s.buildView(c, "api", filter, mode))
}

// === GET /api/v1/records ===
func (s *DashboardService) GetRecords(c *fiber.Ctx) error {
	return utils.Success(c, s.data)
}
