package service

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/internal/repository/memory"
	"lecturescribe-be/pkg/storage"
	"lecturescribe-be/pkg/transcribe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns a canned result and records whether it was called.
type stubProvider struct {
	result *transcribe.Result
	err    error

	mu     sync.Mutex
	calls  int
	lastCT string
}

func (s *stubProvider) ProcessAudio(_ context.Context, _ string, contentType string) (*transcribe.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastCT = contentType
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubProvider) Summarize(_ context.Context, text string) (*transcribe.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	res := *s.result
	if res.Transcription == "" {
		res.Transcription = text
	}
	return &res, nil
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// recordingPublisher captures cleanup messages instead of routing them
// through watermill.
type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, append([]byte(nil), payload...))
	return nil
}

func (p *recordingPublisher) cleanupKeys(t *testing.T) []string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()

	var keys []string
	for _, raw := range p.payloads {
		var msg dto.CleanupTempAudioMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		keys = append(keys, msg.Key)
	}
	return keys
}

func newTestProcessService(t *testing.T, provider transcribe.Provider) (IProcessService, *memory.RepositoryFactory, *storage.MemoryStore, *recordingPublisher) {
	t.Helper()
	repos := memory.NewRepositoryFactory()
	store := storage.NewMemoryStore()
	log := logger.NewNoopLogger()
	pub := &recordingPublisher{}
	noteSvc := NewNoteService(repos, store, testNotesBucket, testUploadsBucket, NewFolderTreeCache(), nil, nil, log)
	svc := NewProcessService(noteSvc, provider, store, testUploadsBucket, pub, nil, log)
	return svc, repos, store, pub
}

const longTranscript = "Today we are going to talk about cellular respiration and how cells convert glucose into usable energy."

// buildTestWAV writes a minimal PCM16 mono WAV with n constant samples.
func buildTestWAV(n int) []byte {
	dataSize := n * 2
	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 1) // mono
	buf = binary.LittleEndian.AppendUint32(buf, 16000)
	buf = binary.LittleEndian.AppendUint32(buf, 32000)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint16(buf, 16)
	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	for i := 0; i < n; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, 1000)
	}
	return buf
}

func TestProcessAudioHappyPath(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{
		Transcription: longTranscript,
		Summary:       "# Cellular Respiration\n\nGlucose becomes ATP.",
	}}
	svc, repos, store, pub := newTestProcessService(t, provider)
	ctx := context.Background()
	userId := uuid.New()

	res, err := svc.ProcessAudio(ctx, userId, &AudioInput{
		FileName:    "lecture.mp3",
		ContentType: "audio/mpeg",
		Size:        7,
		Body:        strings.NewReader("mp3data"),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.NoteId)
	assert.Equal(t, longTranscript, res.Transcription)
	require.NotNil(t, res.StructuredSummary)
	assert.Nil(t, res.Waveform, "waveform only applies to WAV uploads")

	metadata, err := repos.NoteMetadata.FindOne(ctx)
	require.NoError(t, err)
	require.NotNil(t, metadata)
	assert.Equal(t, res.NoteId, metadata.Id)

	// The response points at the relocated audio, not the temp upload.
	permanentKey := fmt.Sprintf("%s/%s/audio.mp3", userId, res.NoteId)
	assert.Equal(t, store.PublicURL(testNotesBucket, permanentKey), res.AudioUrl)
	assert.True(t, store.Exists(testNotesBucket, permanentKey))

	// The temp upload was copied next to the note and scheduled for cleanup.
	keys := pub.cleanupKeys(t)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "temp_audio/audio_"))
	assert.True(t, store.Exists(testUploadsBucket, keys[0]), "cleanup is deferred to the consumer")
}

func TestProcessAudioDefaultsTitle(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{
		Transcription: longTranscript,
		Summary:       "notes",
	}}
	svc, _, _, _ := newTestProcessService(t, provider)

	res, err := svc.ProcessAudio(context.Background(), uuid.New(), &AudioInput{
		FileName:    "lecture.webm",
		ContentType: "audio/webm",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Title, "Lecture "))
}

func TestProcessAudioRejectsZeroByteBeforeProvider(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{Transcription: longTranscript}}
	svc, repos, _, _ := newTestProcessService(t, provider)

	_, err := svc.ProcessAudio(context.Background(), uuid.New(), &AudioInput{
		FileName:    "empty.mp3",
		ContentType: "audio/mpeg",
		Size:        0,
		Body:        strings.NewReader(""),
	})
	require.Error(t, err)
	assert.Equal(t, 0, provider.callCount(), "no model call for an empty upload")

	metadata, err := repos.NoteMetadata.FindOne(context.Background())
	require.NoError(t, err)
	assert.Nil(t, metadata)
}

func TestProcessAudioRejectsUnsupportedType(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{Transcription: longTranscript}}
	svc, _, _, _ := newTestProcessService(t, provider)

	_, err := svc.ProcessAudio(context.Background(), uuid.New(), &AudioInput{
		FileName:    "lecture.ogg",
		ContentType: "audio/ogg",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.Error(t, err)
	assert.Equal(t, 0, provider.callCount())
}

func TestProcessAudioShortTranscriptionPersistsNothing(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{
		Transcription: "too short",
		Summary:       "summary",
	}}
	svc, repos, _, pub := newTestProcessService(t, provider)
	ctx := context.Background()

	_, err := svc.ProcessAudio(ctx, uuid.New(), &AudioInput{
		FileName:    "lecture.mp3",
		ContentType: "audio/mpeg",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.ErrorIs(t, err, transcribe.ErrInsufficientTranscription)

	metadata, err := repos.NoteMetadata.FindOne(ctx)
	require.NoError(t, err)
	assert.Nil(t, metadata, "a failed transcription never produces a note")

	// The stranded temp upload is still handed to the cleanup worker.
	assert.Len(t, pub.cleanupKeys(t), 1)
}

func TestProcessAudioReturnsWaveformForWav(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{
		Transcription: longTranscript,
		Summary:       "notes",
	}}
	svc, _, _, _ := newTestProcessService(t, provider)

	wav := buildTestWAV(64)
	res, err := svc.ProcessAudio(context.Background(), uuid.New(), &AudioInput{
		FileName:    "lecture.wav",
		ContentType: "audio/wav",
		Size:        int64(len(wav)),
		Body:        strings.NewReader(string(wav)),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Waveform)
}

func TestProcessTextRejectsShortInput(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{Transcription: longTranscript}}
	svc, _, _, _ := newTestProcessService(t, provider)

	_, err := svc.ProcessText(context.Background(), uuid.New(), &dto.ProcessTextRequest{Text: "short"})
	require.ErrorIs(t, err, transcribe.ErrInsufficientTranscription)
	assert.Equal(t, 0, provider.callCount())
}

func TestProcessTextSavesNote(t *testing.T) {
	provider := &stubProvider{result: &transcribe.Result{
		Summary: "# Recap\n\nKey points of the pasted transcript.",
	}}
	svc, repos, _, _ := newTestProcessService(t, provider)
	ctx := context.Background()
	userId := uuid.New()

	res, err := svc.ProcessText(ctx, userId, &dto.ProcessTextRequest{
		Text:  longTranscript,
		Title: "Pasted transcript",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pasted transcript", res.Title)
	assert.Equal(t, longTranscript, res.Transcription)

	metadata, err := repos.NoteMetadata.FindOne(ctx)
	require.NoError(t, err)
	require.NotNil(t, metadata)
	assert.Equal(t, "Pasted transcript", metadata.Title)
}
