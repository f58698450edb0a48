package transcribe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = "Today we will discuss the fundamentals of distributed consensus and why it matters."

func TestParseFencedJSONResponse(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"transcription\": \"" + sampleTranscript + "\", \"notes\": \"## Consensus\\nRaft and Paxos.\", \"summary\": \"A lecture on consensus.\", \"keyPoints\": [\"raft\"]}\n```"

	result, err := ParseModelResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, sampleTranscript, result.Transcription)
	assert.Equal(t, "## Consensus\nRaft and Paxos.", result.Summary)
}

func TestParseBareJSONResponse(t *testing.T) {
	raw := `{"transcription": "` + sampleTranscript + `", "summary": "A lecture on consensus."}`

	result, err := ParseModelResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, sampleTranscript, result.Transcription)
	assert.Equal(t, "A lecture on consensus.", result.Summary)
}

func TestParseJSONPrefersNotesOverSummary(t *testing.T) {
	raw := `{"transcription": "` + sampleTranscript + `", "notes": "## Notes body", "summary": "short"}`

	result, err := ParseModelResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, "## Notes body", result.Summary)
}

func TestParseLabeledFields(t *testing.T) {
	raw := "TRANSCRIPTION:\n" + sampleTranscript + "\n\nSUMMARY:\nConsensus algorithms keep replicas in agreement."

	result, err := ParseModelResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, sampleTranscript, result.Transcription)
	assert.Equal(t, "Consensus algorithms keep replicas in agreement.", result.Summary)
}

func TestParseFallsBackToFirstLongParagraph(t *testing.T) {
	long := strings.Repeat("The lecture continues with more detail. ", 4)
	raw := "ok\n\n" + long + "\n\nshort tail"

	result, err := ParseModelResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long), result.Transcription)
	assert.Empty(t, result.Summary)
}

func TestParseRejectsUnusableResponse(t *testing.T) {
	_, err := ParseModelResponse("ok\n\nnothing here")

	assert.ErrorIs(t, err, ErrInsufficientTranscription)
}

func TestParseRejectsShortJSONTranscription(t *testing.T) {
	_, err := ParseModelResponse(`{"transcription": "hi", "summary": "x"}`)

	assert.ErrorIs(t, err, ErrInsufficientTranscription)
}

func TestValidateTranscription(t *testing.T) {
	assert.ErrorIs(t, ValidateTranscription("   "), ErrInsufficientTranscription)
	assert.ErrorIs(t, ValidateTranscription("too short"), ErrInsufficientTranscription)
	assert.NoError(t, ValidateTranscription(sampleTranscript))
}
