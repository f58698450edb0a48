// Package whisper implements speech-to-text through the OpenAI audio
// transcription API. It only transcribes; summarization is composed on top
// by the provider factory.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"lecturescribe-be/pkg/transcribe"
)

type provider struct {
	client openai.Client
	httpc  *http.Client
}

var _ transcribe.Provider = (*provider)(nil)

// NewProvider builds a Whisper-backed transcription provider. baseURL is
// optional and supports OpenAI-compatible gateways.
func NewProvider(apiKey, baseURL string) transcribe.Provider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &provider{
		client: openai.NewClient(opts...),
		httpc:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *provider) ProcessAudio(ctx context.Context, audioURL, contentType string) (*transcribe.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}

	res, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch audio: unexpected status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch audio: empty body")
	}

	result, err := p.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(data), "audio", contentType),
		Model: openai.AudioModelWhisper1,
	})
	if err != nil {
		return nil, err
	}
	if err := transcribe.ValidateTranscription(result.Text); err != nil {
		return nil, err
	}

	return &transcribe.Result{Transcription: result.Text}, nil
}

// Summarize is not supported by the transcription API; the factory pairs
// this provider with a text model for summaries.
func (p *provider) Summarize(_ context.Context, _ string) (*transcribe.Result, error) {
	return nil, fmt.Errorf("whisper provider cannot summarize text")
}
