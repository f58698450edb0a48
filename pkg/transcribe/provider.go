// Package transcribe defines the contract for external speech-to-text and
// summarization providers.
package transcribe

import (
	"context"
	"errors"
	"strings"
)

// MinTranscriptionLength is the minimum usable transcript length. Anything
// shorter is treated as a failed transcription rather than persisted.
const MinTranscriptionLength = 20

// ErrInsufficientTranscription signals that the model reply contained no
// usable transcript. Callers must surface this instead of saving placeholder
// content.
var ErrInsufficientTranscription = errors.New("no usable transcription could be extracted from the model response")

// Result is the outcome of one provider call. Summary is markdown lecture
// notes, not plain prose.
type Result struct {
	Transcription string
	Summary       string
}

// Provider turns audio or raw transcript text into a transcript plus
// markdown notes through one remote model call. No retry is performed at
// this layer.
type Provider interface {
	// ProcessAudio downloads the audio at audioURL and submits it inline to
	// the model for combined transcription and summarization.
	ProcessAudio(ctx context.Context, audioURL, contentType string) (*Result, error)
	// Summarize submits an existing transcript for summarization only.
	Summarize(ctx context.Context, text string) (*Result, error)
}

// ValidateTranscription enforces the minimum-length guard shared by all
// providers.
func ValidateTranscription(transcription string) error {
	if len(strings.TrimSpace(transcription)) < MinTranscriptionLength {
		return ErrInsufficientTranscription
	}
	return nil
}
