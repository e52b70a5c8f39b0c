package service

import (
	"slices"

	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/utils"
)

// Filter menyimpan record yang escuela dan level-nya sama-sama dipilih.
// Urutan dataset tetap dipertahankan.
func Filter(data models.Dataset, schools []models.School, levels []int) []models.Record {
	schoolSet := make(map[models.School]struct{}, len(schools))
	for _, s := range schools {
		schoolSet[s] = struct{}{}
	}
	levelSet := make(map[int]struct{}, len(levels))
	for _, l := range levels {
		levelSet[l] = struct{}{}
	}

	out := make([]models.Record, 0, len(data))
	for _, r := range data {
		if _, ok := schoolSet[r.School]; !ok {
			continue
		}
		if _, ok := levelSet[r.Level]; !ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

func AggregateTotals(records []models.Record) map[models.School]int {
	totals := make(map[models.School]int)
	for _, r := range records {
		totals[r.School] += r.Students
	}
	return totals
}

// OrderSchools mengurutkan escuela yang ada di totals berdasarkan total.
// Jika total sama, urutan dataset dipakai untuk kedua arah.
func OrderSchools(totals map[models.School]int, descending bool) []models.School {
	order := make([]models.School, 0, len(totals))
	for _, s := range models.AllSchools {
		if _, ok := totals[s]; ok {
			order = append(order, s)
		}
	}

	slices.SortStableFunc(order, func(a, b models.School) int {
		if descending {
			return totals[b] - totals[a]
		}
		return totals[a] - totals[b]
	})
	return order
}

func PercentageOfGroup(students, groupTotal int) float64 {
	return utils.Percent(students, groupTotal)
}

// GroupTotals = jumlah 4 level per escuela, tanpa filter.
// Dipakai sebagai penyebut persentase pada grafik statis.
func GroupTotals(data models.Dataset) map[models.School]int {
	return AggregateTotals(data)
}

func NumSchools(records []models.Record) int {
	seen := make(map[models.School]struct{})
	for _, r := range records {
		seen[r.School] = struct{}{}
	}
	return len(seen)
}

// BuildView menjalankan satu render pass penuh: filter -> agregasi ->
// urutan escuela -> anotasi bar. Tidak ada state yang disimpan.
func BuildView(data models.Dataset, filter models.FilterState, mode models.LabelMode) models.DerivedView {
	records := Filter(data, filter.Schools, filter.Levels)
	totals := AggregateTotals(records)
	order := OrderSchools(totals, filter.Descending)

	view := models.DerivedView{
		Filter:  filter,
		Records: records,
		Totals:  totals,
		Order:   order,
		Bars:    []models.Bar{},
	}

	// EmptyResult: metrik nol, tanpa bar
	if len(records) == 0 {
		view.Empty = true
		view.Metrics = models.Metrics{TotalStudentsText: utils.FormatThousands(0)}
		return view
	}

	groupTotals := GroupTotals(data)
	for _, school := range order {
		for _, level := range models.AllLevels {
			for _, r := range records {
				if r.School != school || r.Level != level {
					continue
				}
				pct := PercentageOfGroup(r.Students, groupTotals[school])
				label := utils.FormatThousands(r.Students)
				if mode == models.LabelPercent {
					label = utils.FormatPercent(pct)
				}
				view.Bars = append(view.Bars, models.Bar{
					School:   school,
					Level:    level,
					Students: r.Students,
					Percent:  pct,
					Label:    label,
					Color:    models.LevelColor(level),
				})
			}
		}
	}

	total := 0
	for _, r := range records {
		total += r.Students
	}
	view.Metrics = models.Metrics{
		NumSchools:        NumSchools(records),
		TotalStudents:     total,
		TotalStudentsText: utils.FormatThousands(total),
	}
	return view
}

// StaticView = tampilan statis tetap: tanpa filter, label persentase,
// escuela mengikuti urutan dataset.
func StaticView(data models.Dataset) models.DerivedView {
	view := BuildView(data, models.DefaultFilter(), models.LabelPercent)

	order := make([]models.School, 0, len(view.Order))
	for _, s := range models.AllSchools {
		if _, ok := view.Totals[s]; ok {
			order = append(order, s)
		}
	}
	view.Order = order

	slices.SortStableFunc(view.Bars, func(a, b models.Bar) int {
		return models.SchoolIndex(a.School) - models.SchoolIndex(b.School)
	})
	return view
}
