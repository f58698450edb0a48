// Package gemini implements the transcription provider on top of the Google
// generative language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lecturescribe-be/pkg/transcribe"
)

const (
	defaultModel = "gemini-2.0-flash"
	endpointFmt  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	// base64ChunkSize bounds how much audio is encoded per write so large
	// recordings never build one giant intermediate buffer.
	base64ChunkSize = 48 * 1024

	maxAudioBytes = 100 << 20
)

const audioPrompt = `Please transcribe the audio file and create lecture notes from it.

Respond with a single JSON object in this exact shape:
{
  "transcription": "the full transcription text",
  "notes": "well-structured lecture notes in markdown, using ## for sections and ### for subsections",
  "summary": "a concise summary of the key points",
  "keyPoints": ["key point one", "key point two"]
}`

const summaryPrompt = `You are an expert in creating lecture notes from audio transcriptions.
Your task is to create well-structured, comprehensive notes in markdown format from the following lecture transcript.

Follow these guidelines:
1. Create a concise summary of the main topics covered (use markdown formatting)
2. Identify and list key points and main ideas as bullet points
3. Create a logical structure with sections using markdown headers (## for sections, ### for subsections)
4. Include any important definitions, concepts, or examples using appropriate markdown formatting
5. Use markdown syntax for emphasis where appropriate (*italic* for technical terms, **bold** for important concepts)

Here is the transcript:
`

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []*part `json:"parts"`
	Role  string  `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []*content        `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

type provider struct {
	apiKey string
	model  string
	httpc  *http.Client
}

var _ transcribe.Provider = (*provider)(nil)

// NewProvider builds a Gemini-backed transcription provider. The model name
// falls back to a multimodal default when empty.
func NewProvider(apiKey, model string) transcribe.Provider {
	if model == "" {
		model = defaultModel
	}
	return &provider{
		apiKey: apiKey,
		model:  model,
		httpc:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *provider) ProcessAudio(ctx context.Context, audioURL, contentType string) (*transcribe.Result, error) {
	audio, err := p.fetchAudio(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	encoded, err := encodeBase64Chunked(audio)
	if err != nil {
		return nil, err
	}

	reply, err := p.generate(ctx, &generateRequest{
		Contents: []*content{
			{
				Role: "user",
				Parts: []*part{
					{InlineData: &inlineData{MimeType: contentType, Data: encoded}},
					{Text: audioPrompt},
				},
			},
		},
		GenerationConfig: &generationConfig{
			Temperature:     0.2,
			MaxOutputTokens: 8192,
		},
	})
	if err != nil {
		return nil, err
	}

	result, err := transcribe.ParseModelResponse(reply)
	if err != nil {
		return nil, err
	}
	if err := transcribe.ValidateTranscription(result.Transcription); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *provider) Summarize(ctx context.Context, text string) (*transcribe.Result, error) {
	reply, err := p.generate(ctx, &generateRequest{
		Contents: []*content{
			{
				Role:  "user",
				Parts: []*part{{Text: summaryPrompt + text}},
			},
		},
		GenerationConfig: &generationConfig{
			Temperature:     0.2,
			MaxOutputTokens: 8192,
		},
	})
	if err != nil {
		return nil, err
	}

	return &transcribe.Result{
		Transcription: text,
		Summary:       strings.TrimSpace(reply),
	}, nil
}

func (p *provider) generate(ctx context.Context, payload *generateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf(endpointFmt, p.model),
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var parsed generateResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (p *provider) fetchAudio(ctx context.Context, audioURL string) ([]byte, error) {
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

	data, err := io.ReadAll(io.LimitReader(res.Body, maxAudioBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch audio: empty body")
	}
	if len(data) > maxAudioBytes {
		return nil, fmt.Errorf("fetch audio: file exceeds %d bytes", maxAudioBytes)
	}
	return data, nil
}

// encodeBase64Chunked streams the audio through the encoder in fixed-size
// chunks instead of encoding one monolithic string.
func encodeBase64Chunked(data []byte) (string, error) {
	var b strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &b)
	for start := 0; start < len(data); start += base64ChunkSize {
		end := start + base64ChunkSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := enc.Write(data[start:end]); err != nil {
			return "", err
		}
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}
