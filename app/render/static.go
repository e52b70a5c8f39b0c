package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/utils"
)

const (
	PDFFileName     = "1_Top5.pdf"
	PDFDownloadName = "grafico_repitencia.pdf"
	PDFMimeType     = "application/pdf"
)

// ukuran area plot dalam mm (A4 landscape)
const (
	plotLeft   = 30.0
	plotRight  = 280.0
	plotTop    = 45.0
	plotBottom = 155.0
	barWidth   = 0.2 // relatif terhadap lebar satu grup
)

type StaticOptions struct {
	Title   string
	Created time.Time
}

// StaticPDF menggambar grafik statis tanpa filter: bar dikelompokkan per
// escuela sesuai urutan dataset, warna per level, dan tiap bar diberi label
// persentase terhadap total 4 level escuela-nya.
func StaticPDF(w io.Writer, view models.DerivedView, o StaticOptions) error {
	if view.Empty {
		return ErrEmptyView
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(o.Title, true)
	pdf.SetCreator("student-repetition-dashboard", true)
	if !o.Created.IsZero() {
		pdf.SetCreationDate(o.Created)
	}
	pdf.AddPage()

	// 1. Judul
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	titleW := pdf.GetStringWidth(tr(o.Title))
	pdf.Text((297-titleW)/2, 18, tr(o.Title))

	// 2. Skala sumbu Y + grid putus-putus
	maxStudents := 0
	for _, b := range view.Bars {
		if b.Students > maxStudents {
			maxStudents = b.Students
		}
	}
	yMax := niceCeil(float64(maxStudents), 5)
	step := niceStep(yMax, 5)
	yOf := func(v float64) float64 {
		return plotBottom - (v/yMax)*(plotBottom-plotTop)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetLineWidth(0.2)
	for v := 0.0; v <= yMax+step/2; v += step {
		y := yOf(v)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
		pdf.Line(plotLeft, y, plotRight, y)
		pdf.SetDashPattern([]float64{}, 0)

		label := strconv.Itoa(int(v))
		pdf.SetTextColor(60, 60, 60)
		pdf.Text(plotLeft-2-pdf.GetStringWidth(label), y+1.2, label)
	}

	// sumbu kiri + bawah saja (tanpa border atas/kanan)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotLeft, plotTop, plotLeft, plotBottom)
	pdf.Line(plotLeft, plotBottom, plotRight, plotBottom)

	// 3. Bar per escuela
	groupW := (plotRight - plotLeft) / float64(len(view.Order))
	bw := groupW * barWidth
	levels := len(models.AllLevels)
	for gi, school := range view.Order {
		center := plotLeft + groupW*(float64(gi)+0.5)
		for _, b := range view.BarsFor(school) {
			r, g, bl := hexRGB(b.Color)
			x := center + (float64(b.Level-1)-float64(levels-1)/2)*bw - bw/2
			top := yOf(float64(b.Students))

			pdf.SetFillColor(r, g, bl)
			pdf.Rect(x, top, bw, plotBottom-top, "F")

			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(r, g, bl)
			lw := pdf.GetStringWidth(b.Label)
			pdf.Text(x+bw/2-lw/2, top-1.5, b.Label)
		}

		// label escuela, dibungkus per kata.
		// SplitText membaca rune UTF-8, jadi tr() dipakai per baris hasilnya.
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for li, line := range pdf.SplitText(string(school), groupW*0.6) {
			line = tr(line)
			lw := pdf.GetStringWidth(line)
			pdf.Text(center-lw/2, plotBottom+5+float64(li)*4, line)
		}
	}

	// 4. Judul sumbu
	pdf.SetFont("Helvetica", "", 12)
	xl := tr("Escuela Profesional")
	pdf.Text((plotLeft+plotRight)/2-pdf.GetStringWidth(xl)/2, plotBottom+22, xl)

	yl := "Estudiantes"
	ly := (plotTop+plotBottom)/2 + pdf.GetStringWidth(yl)/2
	pdf.TransformBegin()
	pdf.TransformRotate(90, 14, ly)
	pdf.Text(14, ly, yl)
	pdf.TransformEnd()

	// 5. Legenda di atas plot, 4 kolom tanpa bingkai
	pdf.SetFont("Helvetica", "", 9)
	legendW := 0.0
	for _, level := range models.AllLevels {
		legendW += 6 + pdf.GetStringWidth(tr(models.LevelName(level))) + 8
	}
	lx := (297 - legendW) / 2
	for _, level := range models.AllLevels {
		r, g, bl := hexRGB(models.LevelColor(level))
		pdf.SetFillColor(r, g, bl)
		pdf.Rect(lx, 29, 4, 4, "F")
		name := tr(models.LevelName(level))
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(lx+6, 32.2, name)
		lx += 6 + pdf.GetStringWidth(name) + 8
	}

	// 6. Catatan total
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(90, 90, 90)
	note := fmt.Sprintf("Total de estudiantes: %s", utils.FormatThousands(view.Metrics.TotalStudents))
	pdf.Text(plotLeft, 200, tr(note))

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// hexRGB: "#rrggbb" -> r, g, b. Format lain jatuh ke abu-abu.
func hexRGB(hex string) (int, int, int) {
	if len(hex) == 7 && hex[0] == '#' {
		if v, err := strconv.ParseUint(hex[1:], 16, 32); err == nil {
			return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
		}
	}
	return 127, 127, 127
}
