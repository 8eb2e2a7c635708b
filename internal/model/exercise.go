package model

import "gorm.io/datatypes"

type TestCase struct {
	Input       string `json:"input"`
	Expected    string `json:"expected"`
	Description string `json:"description"`
}

// swagger:model CodeExercise
type CodeExercise struct {
	ID             string                        `gorm:"primaryKey;size:64" json:"id"`
	LessonID       string                        `gorm:"size:64;index" json:"lessonId"`
	Title          string                        `gorm:"size:200" json:"title"`
	Description    string                        `gorm:"type:text" json:"description"`
	StartingCode   string                        `gorm:"type:text" json:"startingCode"`
	ExpectedOutput string                        `gorm:"type:text" json:"expectedOutput"`
	TestCases      datatypes.JSONSlice[TestCase] `json:"testCases"`
	Hints          datatypes.JSONSlice[string]   `json:"hints"`
	Points         int                           `json:"points"`
}

func (CodeExercise) TableName() string {
	return "code_exercises"
}
