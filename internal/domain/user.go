package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is created lazily on the first progress write for an external ref.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalRef string    `gorm:"column:external_ref;not null;uniqueIndex" json:"external_ref"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
