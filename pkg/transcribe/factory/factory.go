// Package factory selects and composes the configured transcription
// provider.
package factory

import (
	"context"
	"fmt"

	"lecturescribe-be/pkg/transcribe"
	"lecturescribe-be/pkg/transcribe/gemini"
	"lecturescribe-be/pkg/transcribe/whisper"
)

const (
	ProviderGemini  = "gemini"
	ProviderWhisper = "whisper"
)

// Config selects the provider and carries its credentials.
type Config struct {
	Provider      string
	GeminiApiKey  string
	GeminiModel   string
	OpenAiApiKey  string
	OpenAiBaseUrl string
}

// New returns the provider named in cfg.Provider. Whisper handles audio
// only, so it is composed with Gemini for the summarization half.
func New(cfg Config) (transcribe.Provider, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return gemini.NewProvider(cfg.GeminiApiKey, cfg.GeminiModel), nil
	case ProviderWhisper:
		return &composed{
			audio: whisper.NewProvider(cfg.OpenAiApiKey, cfg.OpenAiBaseUrl),
			text:  gemini.NewProvider(cfg.GeminiApiKey, cfg.GeminiModel),
		}, nil
	default:
		return nil, fmt.Errorf("unknown transcription provider: %s", cfg.Provider)
	}
}

// composed transcribes with one provider and summarizes with another.
type composed struct {
	audio transcribe.Provider
	text  transcribe.Provider
}

var _ transcribe.Provider = (*composed)(nil)

func (c *composed) ProcessAudio(ctx context.Context, audioURL, contentType string) (*transcribe.Result, error) {
	transcribed, err := c.audio.ProcessAudio(ctx, audioURL, contentType)
	if err != nil {
		return nil, err
	}

	summarized, err := c.text.Summarize(ctx, transcribed.Transcription)
	if err != nil {
		return nil, err
	}

	return &transcribe.Result{
		Transcription: transcribed.Transcription,
		Summary:       summarized.Summary,
	}, nil
}

func (c *composed) Summarize(ctx context.Context, text string) (*transcribe.Result, error) {
	return c.text.Summarize(ctx, text)
}
