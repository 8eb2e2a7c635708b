package model

import (
	"time"

	"gorm.io/datatypes"
)

type LessonType string

const (
	LessonConcept  LessonType = "concept"
	LessonExample  LessonType = "example"
	LessonExercise LessonType = "exercise"
	LessonQuiz     LessonType = "quiz"
)

// swagger:model Lesson
type Lesson struct {
	ID                string                            `gorm:"primaryKey;size:64" json:"id"`
	ModuleID          string                            `gorm:"size:64;not null;uniqueIndex:idx_lesson_module_slug" json:"moduleId"`
	Title             string                            `gorm:"size:200;not null" json:"title"`
	Description       string                            `gorm:"type:text" json:"description"`
	Slug              string                            `gorm:"size:120;not null;uniqueIndex:idx_lesson_module_slug" json:"slug"`
	Type              LessonType                        `gorm:"size:20" json:"type"`
	Order             int                               `gorm:"column:sort_order;index" json:"order"`
	EstimatedDuration int                               `json:"estimatedDuration"`
	Tags              datatypes.JSONSlice[string]       `json:"tags"`
	Objectives        datatypes.JSONSlice[string]       `json:"objectives"`
	Prerequisites     datatypes.JSONSlice[string]       `json:"prerequisites"`
	ContentBlocks     datatypes.JSONSlice[ContentBlock] `json:"contentBlocks"`
	Difficulty        Difficulty                        `gorm:"size:20" json:"difficulty"`
	IconURL           string                            `gorm:"size:255" json:"iconUrl,omitempty"`
	Status            PublishStatus                     `gorm:"size:20;index" json:"status"`
	CreatedAt         time.Time                         `json:"createdAt"`
	UpdatedAt         time.Time                         `json:"updatedAt"`
	PublishedAt       *time.Time                        `json:"publishedAt,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l *Lesson) IsPublished() bool {
	return l.Status == StatusPublished
}

func (l *Lesson) Publish(now time.Time) {
	l.Status = StatusPublished
	l.PublishedAt = &now
	l.UpdatedAt = now
}

func (l *Lesson) Archive(now time.Time) {
	l.Status = StatusArchived
	l.UpdatedAt = now
}
