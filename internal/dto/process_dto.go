package dto

import (
	"lecturescribe-be/pkg/summary"

	"github.com/google/uuid"
)

type ProcessTextRequest struct {
	Text     string     `json:"text" validate:"required,min=20"`
	Title    string     `json:"title"`
	FolderId *uuid.UUID `json:"folder_id"`
}

type ProcessAudioResponse struct {
	NoteId            uuid.UUID           `json:"note_id"`
	Title             string              `json:"title"`
	Transcription     string              `json:"transcription"`
	Summary           string              `json:"summary"`
	StructuredSummary *summary.Structured `json:"structured_summary"`
	AudioUrl          string              `json:"audio_url"`
	// Waveform is a coarse amplitude envelope for WAV uploads, empty for
	// other formats.
	Waveform []float64 `json:"waveform,omitempty"`
}
