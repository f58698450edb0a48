package entity

import (
	"time"

	"github.com/google/uuid"

	"lecturescribe-be/pkg/summary"
)

// Note is the full note document as persisted in the notes bucket at
// <userId>/<noteId>/note.json. AudioUrl is resolved from metadata on read
// and never written into the document itself.
type Note struct {
	Id                uuid.UUID           `json:"id"`
	Title             string              `json:"title"`
	Transcription     string              `json:"transcription"`
	Summary           string              `json:"summary"`
	StructuredSummary *summary.Structured `json:"structuredSummary"`
	FolderId          *uuid.UUID          `json:"folderId"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`

	AudioUrl string `json:"-"`
}
