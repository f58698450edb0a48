package dto

import (
	"time"

	"lecturescribe-be/pkg/summary"

	"github.com/google/uuid"
)

type SaveNoteRequest struct {
	Id                uuid.UUID
	Title             string              `json:"title" validate:"required"`
	Transcription     string              `json:"transcription"`
	Summary           string              `json:"summary"`
	StructuredSummary *summary.Structured `json:"structured_summary"`
	AudioUrl          string              `json:"audio_url"`
	FolderId          *uuid.UUID          `json:"folder_id"`
}

type SaveNoteResponse struct {
	Id uuid.UUID `json:"id"`
	// AudioUrl is the fetchable location of the note's audio after any
	// relocation, empty when the note has none.
	AudioUrl string `json:"audio_url,omitempty"`
}

type ShowNoteResponse struct {
	Id                uuid.UUID           `json:"id"`
	Title             string              `json:"title"`
	Transcription     string              `json:"transcription"`
	Summary           string              `json:"summary"`
	StructuredSummary *summary.Structured `json:"structured_summary"`
	AudioUrl          string              `json:"audio_url"`
	FolderId          *uuid.UUID          `json:"folder_id"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         *time.Time          `json:"updated_at"`
}

type NoteMetadataResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Preview   string     `json:"preview"`
	FolderId  *uuid.UUID `json:"folder_id"`
	HasAudio  bool       `json:"has_audio"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type UpdateNoteTitleRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

type UpdateNoteContentRequest struct {
	Id                uuid.UUID
	Transcription     string              `json:"transcription"`
	Summary           string              `json:"summary"`
	StructuredSummary *summary.Structured `json:"structured_summary"`
}

type CreateEmptyNoteRequest struct {
	Title    string     `json:"title" validate:"required"`
	FolderId *uuid.UUID `json:"folder_id"`
}

type MoveNoteRequest struct {
	Id       uuid.UUID
	FolderId *uuid.UUID `json:"folder_id"`
}
