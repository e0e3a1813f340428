package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// ConceptProgress is one (user, concept, status) marker. ConceptName is
// stored normalized; a concept is never both in_progress and completed,
// completion deletes the in_progress row in the same transaction.
type ConceptProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_progress_user_concept_status,unique,priority:1" json:"user_id"`
	ConceptName string     `gorm:"column:concept_name;not null;index:idx_progress_user_concept_status,unique,priority:2" json:"concept_name"`
	Status      string     `gorm:"column:status;not null;index:idx_progress_user_concept_status,unique,priority:3" json:"status"`
	StartedAt   *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	FinishedAt  *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (ConceptProgress) TableName() string { return "concept_progress" }
