package models

// FilterQuery dibaca dari query string (?school=...&level=...&sort=desc&table=true).
// Submitted menandakan form sidebar sudah dikirim, sehingga parameter
// school/level yang kosong berarti "tidak ada yang dipilih".
type FilterQuery struct {
	Schools   []string `query:"school" validate:"dive,school"`
	Levels    []int    `query:"level" validate:"dive,min=1,max=4"`
	Sort      string   `query:"sort" validate:"omitempty,oneof=asc desc"`
	Table     bool     `query:"table"`
	Submitted bool     `query:"submitted"`
	Labels    string   `query:"labels" validate:"omitempty,oneof=value percent"`
}

type FilterState struct {
	Schools    []School `json:"schools"`
	Levels     []int    `json:"levels"`
	Descending bool     `json:"descending"`
	ShowTable  bool     `json:"showTable"`
}

// DefaultFilter: semua escuela dan level, urut menurun, tabel disembunyikan.
func DefaultFilter() FilterState {
	return FilterState{
		Schools:    append([]School(nil), AllSchools...),
		Levels:     append([]int(nil), AllLevels...),
		Descending: true,
		ShowTable:  false,
	}
}

func (f FilterState) HasSchool(s School) bool {
	for _, v := range f.Schools {
		if v == s {
			return true
		}
	}
	return false
}

func (f FilterState) HasLevel(level int) bool {
	for _, v := range f.Levels {
		if v == level {
			return true
		}
	}
	return false
}

// LabelMode menentukan anotasi tiap bar.
type LabelMode string

const (
	// LabelPercent: persentase terhadap total 4 level escuela (grafik statis)
	LabelPercent LabelMode = "percent"
	// LabelValue: nilai mentah (dashboard interaktif)
	LabelValue LabelMode = "value"
)

type Bar struct {
	School   School  `json:"school"`
	Level    int     `json:"level"`
	Students int     `json:"students"`
	Percent  float64 `json:"percent"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
}

type Metrics struct {
	NumSchools        int    `json:"numSchools"`
	TotalStudents     int    `json:"totalStudents"`
	TotalStudentsText string `json:"totalStudentsText"`
}

type DerivedView struct {
	Filter  FilterState    `json:"filter"`
	Records []Record       `json:"records"`
	Totals  map[School]int `json:"totals"`
	Order   []School       `json:"order"`
	Bars    []Bar          `json:"bars"`
	Metrics Metrics        `json:"metrics"`
	Empty   bool           `json:"empty"`
}

// BarsFor mengembalikan bar milik satu escuela, sudah urut per level.
func (v DerivedView) BarsFor(s School) []Bar {
	var out []Bar
	for _, b := range v.Bars {
		if b.School == s {
			out = append(out, b)
		}
	}
	return out
}
