package mocks

import (
	"github.com/stretchr/testify/mock"

	models "student-repetition-dashboard/app/models"
)

type MockRepetitionRepo struct {
	mock.Mock
}

func (m *MockRepetitionRepo) All() models.Dataset {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(models.Dataset)
}

func (m *MockRepetitionRepo) Schools() []models.School {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.School)
}
