package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContentChunk is one unit of study material attached to a concept. The time
// estimator only counts rows per normalized concept name.
type ContentChunk struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ConceptName string         `gorm:"column:concept_name;not null;index" json:"concept_name"`
	Index       int            `gorm:"column:idx;not null;default:0" json:"index"`
	Text        string         `gorm:"column:text;type:text" json:"text,omitempty"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (ContentChunk) TableName() string { return "content_chunks" }
