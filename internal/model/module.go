package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// swagger:model Module
type Module struct {
	ID                 string                          `gorm:"primaryKey;size:64" json:"id"`
	Title              string                          `gorm:"size:200;not null" json:"title"`
	Description        string                          `gorm:"type:text" json:"description"`
	Slug               string                          `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Difficulty         Difficulty                      `gorm:"size:20" json:"difficulty"`
	Status             PublishStatus                   `gorm:"size:20;index" json:"status"`
	EstimatedDuration  int                             `json:"estimatedDuration"`
	Order              int                             `gorm:"column:sort_order;index" json:"order"`
	Tags               datatypes.JSONSlice[string]     `json:"tags"`
	IconURL            string                          `gorm:"size:255" json:"iconUrl,omitempty"`
	CoverImageURL      string                          `gorm:"size:255" json:"coverImageUrl,omitempty"`
	Prerequisites      datatypes.JSONSlice[string]     `json:"prerequisites"`
	LearningObjectives datatypes.JSONSlice[string]     `json:"learningObjectives"`
	Evaluations        datatypes.JSONSlice[Evaluation] `json:"evaluations"`
	TotalLessons       int                             `gorm:"-" json:"totalLessons"`
	CreatedAt          time.Time                       `json:"createdAt"`
	UpdatedAt          time.Time                       `json:"updatedAt"`
	PublishedAt        *time.Time                      `json:"publishedAt,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// MarshalJSON 额外输出 estimatedMinutes，兼容前端旧字段
func (m Module) MarshalJSON() ([]byte, error) {
	type alias Module
	return json.Marshal(struct {
		alias
		EstimatedMinutes int `json:"estimatedMinutes"`
	}{alias(m), m.EstimatedDuration})
}

func (m *Module) IsPublished() bool {
	return m.Status == StatusPublished
}

func (m *Module) Publish(now time.Time) {
	m.Status = StatusPublished
	m.PublishedAt = &now
	m.UpdatedAt = now
}

func (m *Module) Archive(now time.Time) {
	m.Status = StatusArchived
	m.UpdatedAt = now
}
