package entity

import (
	"time"

	"github.com/google/uuid"
)

// LegacyNote is a row of the old flat notes table. It only exists as the
// source side of the bucket migration.
type LegacyNote struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	Title             string
	Transcription     string
	RawSummary        string
	StructuredSummary []byte
	AudioUrl          *string
	CreatedAt         time.Time
}
