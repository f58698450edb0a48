package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LegacyNote maps the pre-migration notes table where note content lived
// directly in database columns instead of object storage.
type LegacyNote struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId            uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title             string         `gorm:"type:varchar(255)"`
	Content           string         `gorm:"type:text"`
	RawSummary        string         `gorm:"type:text"`
	StructuredSummary datatypes.JSON `gorm:"type:jsonb"`
	AudioUrl          *string        `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
}

func (LegacyNote) TableName() string {
	return "notes"
}
