package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/pkg/audio"
	"lecturescribe-be/pkg/events"
	pktNats "lecturescribe-be/pkg/nats"
	"lecturescribe-be/pkg/storage"
	"lecturescribe-be/pkg/summary"
	"lecturescribe-be/pkg/transcribe"

	"github.com/google/uuid"
)

type IProcessService interface {
	// ProcessAudio runs the full pipeline: validate, stage the upload,
	// transcribe and summarize, then persist the note.
	ProcessAudio(ctx context.Context, userId uuid.UUID, input *AudioInput) (*dto.ProcessAudioResponse, error)
	// ProcessText summarizes an existing transcript and persists the note.
	ProcessText(ctx context.Context, userId uuid.UUID, req *dto.ProcessTextRequest) (*dto.ProcessAudioResponse, error)
}

// AudioInput carries one uploaded audio file through the pipeline.
type AudioInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	Title       string
	FolderId    *uuid.UUID
}

type processService struct {
	noteService      INoteService
	provider         transcribe.Provider
	store            storage.ObjectStore
	uploadsBucket    string
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewProcessService(
	noteService INoteService,
	provider transcribe.Provider,
	store storage.ObjectStore,
	uploadsBucket string,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProcessService {
	return &processService{
		noteService:      noteService,
		provider:         provider,
		store:            store,
		uploadsBucket:    uploadsBucket,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (c *processService) ProcessAudio(ctx context.Context, userId uuid.UUID, input *AudioInput) (*dto.ProcessAudioResponse, error) {
	// Reject before any network call.
	if err := audio.Validate(input.Size); err != nil {
		return nil, err
	}

	contentType, err := audio.ResolveContentType(input.FileName, input.ContentType)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio upload: %w", err)
	}
	if len(data) == 0 {
		return nil, audio.ErrEmptyFile
	}

	tempKey := fmt.Sprintf("temp_audio/audio_%d%s", time.Now().UnixMilli(), audio.Extension(input.FileName))
	if err := c.store.Upload(ctx, c.uploadsBucket, tempKey, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	if err := c.store.Verify(ctx, c.uploadsBucket, tempKey); err != nil {
		// The file might still be processable, continue anyway.
		c.log.Warn("process", "Uploaded audio failed verification", map[string]interface{}{
			"key":   tempKey,
			"error": err.Error(),
		})
	}

	audioURL := c.store.PublicURL(c.uploadsBucket, tempKey)

	result, err := c.provider.ProcessAudio(ctx, audioURL, contentType)
	if err != nil {
		c.scheduleCleanup(ctx, tempKey)
		return nil, err
	}
	if err := transcribe.ValidateTranscription(result.Transcription); err != nil {
		c.scheduleCleanup(ctx, tempKey)
		return nil, err
	}

	structured := summary.Parse(result.Summary)

	title := input.Title
	if title == "" {
		title = fmt.Sprintf("Lecture %s", time.Now().Format("Jan 2, 2006 15:04"))
	}

	saved, err := c.noteService.Save(ctx, userId, &dto.SaveNoteRequest{
		Title:             title,
		Transcription:     result.Transcription,
		Summary:           result.Summary,
		StructuredSummary: structured,
		AudioUrl:          audioURL,
		FolderId:          input.FolderId,
	})
	if err != nil {
		c.scheduleCleanup(ctx, tempKey)
		return nil, err
	}

	c.scheduleCleanup(ctx, tempKey)
	c.publishProcessed(ctx, userId, saved.Id, len(result.Transcription))

	// The temp URL handed to Save is already queued for cleanup; the
	// response carries the relocated copy instead.
	response := &dto.ProcessAudioResponse{
		NoteId:            saved.Id,
		Title:             title,
		Transcription:     result.Transcription,
		Summary:           result.Summary,
		StructuredSummary: structured,
		AudioUrl:          saved.AudioUrl,
	}
	if contentType == "audio/wav" {
		response.Waveform = audio.Waveform(data)
	}
	return response, nil
}

func (c *processService) ProcessText(ctx context.Context, userId uuid.UUID, req *dto.ProcessTextRequest) (*dto.ProcessAudioResponse, error) {
	if err := transcribe.ValidateTranscription(req.Text); err != nil {
		return nil, err
	}

	result, err := c.provider.Summarize(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	structured := summary.Parse(result.Summary)

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Lecture %s", time.Now().Format("Jan 2, 2006 15:04"))
	}

	saved, err := c.noteService.Save(ctx, userId, &dto.SaveNoteRequest{
		Title:             title,
		Transcription:     req.Text,
		Summary:           result.Summary,
		StructuredSummary: structured,
		FolderId:          req.FolderId,
	})
	if err != nil {
		return nil, err
	}

	c.publishProcessed(ctx, userId, saved.Id, len(req.Text))

	return &dto.ProcessAudioResponse{
		NoteId:            saved.Id,
		Title:             title,
		Transcription:     req.Text,
		Summary:           result.Summary,
		StructuredSummary: structured,
	}, nil
}

// scheduleCleanup hands the temp upload to the background consumer. The
// consumer deletes it after the note save settled, whether processing
// succeeded or not.
func (c *processService) scheduleCleanup(ctx context.Context, tempKey string) {
	if c.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.CleanupTempAudioMessage{
		Bucket: c.uploadsBucket,
		Key:    tempKey,
	})
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.log.Warn("process", "Failed to schedule temp audio cleanup", map[string]interface{}{
			"key":   tempKey,
			"error": err.Error(),
		})
	}
}

func (c *processService) publishProcessed(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, transcriptionLength int) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.NewNoteProcessed(userId.String(), noteId.String(), transcriptionLength)
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.log.Warn("process", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
