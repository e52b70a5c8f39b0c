package repository

import (
	models "student-repetition-dashboard/app/models"
)

type RepetitionRepository interface {
	All() models.Dataset
	Schools() []models.School
}

type repetitionRepository struct {
	data models.Dataset
}

// Data manual per escuela, kolom = repitencia ke-1..4
var repetitionTable = [][4]int{
	{504, 146, 25, 7},
	{286, 97, 15, 3},
	{209, 125, 32, 9},
	{256, 89, 21, 7},
	{267, 74, 24, 1},
}

func NewRepetitionRepository() RepetitionRepository {
	data := make(models.Dataset, 0, len(models.AllSchools)*len(models.AllLevels))
	for i, school := range models.AllSchools {
		for j, count := range repetitionTable[i] {
			data = append(data, models.Record{
				School:   school,
				Level:    j + 1,
				Students: count,
			})
		}
	}
	return &repetitionRepository{data: data}
}

// All mengembalikan salinan supaya dataset asli tidak bisa diubah pemanggil
func (r *repetitionRepository) All() models.Dataset {
	out := make(models.Dataset, len(r.data))
	copy(out, r.data)
	return out
}

func (r *repetitionRepository) Schools() []models.School {
	return append([]models.School(nil), models.AllSchools...)
}
