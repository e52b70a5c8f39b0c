package models

import "fmt"

type School string

const (
	Contabilidad              School = "Contabilidad"
	IngenieriaIndustrial      School = "Ingeniería Industrial"
	IngenieriaMecanicaFluidos School = "Ingeniería Mecánica de Fluidos"
	GestionTributaria         School = "Gestión Tributaria"
	Derecho                   School = "Derecho"
)

// AllSchools mengikuti urutan baris pada tabel sumber.
// Urutan ini dipakai sebagai tie-break saat sorting.
var AllSchools = []School{
	Contabilidad,
	IngenieriaIndustrial,
	IngenieriaMecanicaFluidos,
	GestionTributaria,
	Derecho,
}

// AllLevels = repitencia ke-1 sampai ke-4
var AllLevels = []int{1, 2, 3, 4}

const (
	MinLevel = 1
	MaxLevel = 4
)

func IsSchool(name string) bool {
	for _, s := range AllSchools {
		if string(s) == name {
			return true
		}
	}
	return false
}

// SchoolIndex mengembalikan posisi s di dataset, atau -1.
func SchoolIndex(s School) int {
	for i, v := range AllSchools {
		if v == s {
			return i
		}
	}
	return -1
}

type Record struct {
	School   School `json:"school"`
	Level    int    `json:"level"`
	Students int    `json:"students"`
}

type Dataset []Record

// LevelName -> "1° Repitencia"
func LevelName(level int) string {
	return fmt.Sprintf("%d° Repitencia", level)
}

// LevelColors: biru, oranye, hijau, merah (level 1-4)
var LevelColors = map[int]string{
	1: "#1f77b4",
	2: "#ff7f0e",
	3: "#2ca02c",
	4: "#d62728",
}

func LevelColor(level int) string {
	if c, ok := LevelColors[level]; ok {
		return c
	}
	return "#7f7f7f"
}
