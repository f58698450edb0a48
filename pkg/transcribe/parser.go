package transcribe

import (
	"encoding/json"
	"regexp"
	"strings"
)

// modelPayload is the JSON shape the prompt asks the model to produce.
type modelPayload struct {
	Transcription string   `json:"transcription"`
	Notes         string   `json:"notes"`
	Summary       string   `json:"summary"`
	KeyPoints     []string `json:"keyPoints"`
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSONRe   = regexp.MustCompile(`(?s)\{.*\}`)

	transcriptionFieldRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)transcription\s*:\s*(.*?)(?:\n\s*(?:summary|notes|key\s*points)\s*:|$)`),
		regexp.MustCompile(`(?is)transcript\s*:\s*(.*?)(?:\n\s*(?:summary|notes|key\s*points)\s*:|$)`),
		regexp.MustCompile(`(?is)the\s+transcription\s+is\s*:?\s*(.*?)(?:\n\s*(?:summary|notes)\s*:|$)`),
	}
	summaryFieldRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\bnotes\s*:\s*(.*)`),
		regexp.MustCompile(`(?is)\bsummary\s*:\s*(.*)`),
	}
)

// minParagraphLength is the cutoff for the last-resort fallback that takes a
// raw paragraph as the transcript.
const minParagraphLength = 80

// ParseModelResponse recovers a transcript and markdown notes from a model
// reply. It tries, in order: a JSON object (optionally inside a markdown
// fence), labeled TRANSCRIPTION/SUMMARY fields, and finally the first
// sufficiently long paragraph of the raw text. The chain is deliberately
// lenient because models drift from the requested format.
func ParseModelResponse(raw string) (*Result, error) {
	if result := parseJSONBlock(raw); result != nil {
		return result, nil
	}
	if result := parseLabeledFields(raw); result != nil {
		return result, nil
	}
	if result := parseFirstParagraph(raw); result != nil {
		return result, nil
	}
	return nil, ErrInsufficientTranscription
}

func parseJSONBlock(raw string) *Result {
	candidate := ""
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else if m := bareJSONRe.FindString(raw); m != "" {
		candidate = m
	}
	if candidate == "" {
		return nil
	}

	var payload modelPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil
	}
	if err := ValidateTranscription(payload.Transcription); err != nil {
		return nil
	}

	// Markdown notes carry more structure than the plain summary, prefer them.
	summary := payload.Notes
	if strings.TrimSpace(summary) == "" {
		summary = payload.Summary
	}

	return &Result{
		Transcription: strings.TrimSpace(payload.Transcription),
		Summary:       strings.TrimSpace(summary),
	}
}

func parseLabeledFields(raw string) *Result {
	var transcription string
	for _, re := range transcriptionFieldRes {
		if m := re.FindStringSubmatch(raw); m != nil {
			transcription = strings.TrimSpace(m[1])
			break
		}
	}
	if ValidateTranscription(transcription) != nil {
		return nil
	}

	var summary string
	for _, re := range summaryFieldRes {
		if m := re.FindStringSubmatch(raw); m != nil {
			summary = strings.TrimSpace(m[1])
			break
		}
	}

	return &Result{Transcription: transcription, Summary: summary}
}

func parseFirstParagraph(raw string) *Result {
	for _, paragraph := range strings.Split(raw, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if len(paragraph) >= minParagraphLength && !strings.HasPrefix(paragraph, "#") {
			return &Result{Transcription: paragraph}
		}
	}
	return nil
}
