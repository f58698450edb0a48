package model

import (
	"time"

	"github.com/google/uuid"
)

type NoteMetadata struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Preview   string     `gorm:"type:text"`
	NotePath  string     `gorm:"type:text;not null"`
	AudioPath *string    `gorm:"type:text"`
	FolderId  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (NoteMetadata) TableName() string {
	return "note_metadata"
}
