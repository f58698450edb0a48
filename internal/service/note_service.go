package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/internal/repository/specification"
	"lecturescribe-be/internal/repository/unitofwork"
	"lecturescribe-be/pkg/debounce"
	"lecturescribe-be/pkg/events"
	pktNats "lecturescribe-be/pkg/nats"
	"lecturescribe-be/pkg/preview"
	"lecturescribe-be/pkg/storage"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// tempAudioPrefix marks uploads still sitting in the transient bucket.
const tempAudioPrefix = "temp_audio/"

const autosaveDelay = 2 * time.Second

type INoteService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveNoteRequest) (*dto.SaveNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteMetadataResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	UpdateTitle(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteTitleRequest) (*dto.SaveNoteResponse, error)
	UpdateContent(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteContentRequest) (*dto.SaveNoteResponse, error)
	// Autosave coalesces rapid content updates into one trailing write.
	Autosave(userId uuid.UUID, req *dto.UpdateNoteContentRequest)
	CreateEmpty(ctx context.Context, userId uuid.UUID, req *dto.CreateEmptyNoteRequest) (*dto.SaveNoteResponse, error)
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	store          storage.ObjectStore
	notesBucket    string
	uploadsBucket  string
	listCache      *noteListCache
	treeCache      *gocache.Cache
	eventPublisher *pktNats.Publisher
	debouncer      *debounce.Debouncer
	log            logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.ObjectStore,
	notesBucket string,
	uploadsBucket string,
	treeCache *gocache.Cache,
	redisClient *redis.Client,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		store:          store,
		notesBucket:    notesBucket,
		uploadsBucket:  uploadsBucket,
		listCache:      newNoteListCache(redisClient),
		treeCache:      treeCache,
		eventPublisher: eventPublisher,
		debouncer:      debounce.New(autosaveDelay),
		log:            log,
	}
}

// invalidateCaches drops both the note listing and the folder tree for the
// user. Every note mutation changes what the tree shows.
func (c *noteService) invalidateCaches(ctx context.Context, userId uuid.UUID) {
	c.listCache.Invalidate(ctx, userId.String())
	if c.treeCache != nil {
		c.treeCache.Delete(userId.String())
	}
}

func notePath(userId, noteId uuid.UUID) string {
	return fmt.Sprintf("%s/%s/note.json", userId, noteId)
}

func noteFolderPrefix(userId, noteId uuid.UUID) string {
	return fmt.Sprintf("%s/%s/", userId, noteId)
}

func (c *noteService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveNoteRequest) (*dto.SaveNoteResponse, error) {
	noteId := req.Id
	if noteId == uuid.Nil {
		noteId = uuid.New()
	}

	note := &entity.Note{
		Id:                noteId,
		Title:             req.Title,
		Transcription:     req.Transcription,
		Summary:           req.Summary,
		StructuredSummary: req.StructuredSummary,
		FolderId:          req.FolderId,
		CreatedAt:         time.Now(),
	}

	audioPath := c.relocateAudio(ctx, userId, noteId, req.AudioUrl)

	if err := c.writeDocument(ctx, userId, note); err != nil {
		return nil, fmt.Errorf("failed to save note document: %w", err)
	}

	metadata := &entity.NoteMetadata{
		Id:        noteId,
		UserId:    userId,
		Title:     req.Title,
		Preview:   preview.Excerpt(req.Summary, preview.DefaultLength),
		NotePath:  notePath(userId, noteId),
		AudioPath: audioPath,
		FolderId:  req.FolderId,
		CreatedAt: note.CreatedAt,
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteMetadataRepository().Upsert(ctx, metadata); err != nil {
		return nil, fmt.Errorf("failed to save note metadata: %w", err)
	}

	c.invalidateCaches(ctx, userId)
	c.publishEvent(ctx, events.NewNoteCreated(userId.String(), noteId.String(), req.Title))

	return &dto.SaveNoteResponse{Id: noteId, AudioUrl: c.resolveAudioUrl(audioPath)}, nil
}

// relocateAudio copies a temporary upload next to the note document and
// returns the stored audio reference. Failures never abort the note save; a
// still-valid temp or external URL is kept instead.
func (c *noteService) relocateAudio(ctx context.Context, userId, noteId uuid.UUID, audioUrl string) *string {
	if audioUrl == "" {
		return nil
	}

	idx := strings.Index(audioUrl, tempAudioPrefix)
	if idx < 0 {
		// External or already-permanent reference, keep as-is.
		return &audioUrl
	}

	tempKey := audioUrl[idx:]
	ext := ""
	if dot := strings.LastIndex(tempKey, "."); dot >= 0 {
		ext = tempKey[dot:]
	}
	permanentKey := fmt.Sprintf("%s/%s/audio%s", userId, noteId, ext)

	if err := c.store.Copy(ctx, c.uploadsBucket, tempKey, c.notesBucket, permanentKey); err != nil {
		c.log.Warn("note", "Failed to copy audio to permanent storage", map[string]interface{}{
			"note_id": noteId.String(),
			"key":     tempKey,
			"error":   err.Error(),
		})
		return &audioUrl
	}
	return &permanentKey
}

func (c *noteService) writeDocument(ctx context.Context, userId uuid.UUID, note *entity.Note) error {
	doc, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return c.store.Upload(ctx, c.notesBucket, notePath(userId, note.Id), bytes.NewReader(doc), "application/json")
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	metadata, err := uow.NoteMetadataRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		return nil, nil // Not found
	}

	raw, err := c.store.Download(ctx, c.notesBucket, metadata.NotePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note document: %w", err)
	}

	var note entity.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, fmt.Errorf("failed to parse note document: %w", err)
	}

	return &dto.ShowNoteResponse{
		Id:                note.Id,
		Title:             note.Title,
		Transcription:     note.Transcription,
		Summary:           note.Summary,
		StructuredSummary: note.StructuredSummary,
		AudioUrl:          c.resolveAudioUrl(metadata.AudioPath),
		FolderId:          metadata.FolderId,
		CreatedAt:         metadata.CreatedAt,
		UpdatedAt:         metadata.UpdatedAt,
	}, nil
}

// resolveAudioUrl turns the stored audio reference into a fetchable URL.
// References are either raw URLs or keys in the notes bucket.
func (c *noteService) resolveAudioUrl(audioPath *string) string {
	if audioPath == nil {
		return ""
	}
	if strings.HasPrefix(*audioPath, "http://") || strings.HasPrefix(*audioPath, "https://") {
		return *audioPath
	}
	return c.store.PublicURL(c.notesBucket, *audioPath)
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteMetadataResponse, error) {
	if cached, ok := c.listCache.Get(ctx, userId.String()); ok {
		return cached, nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.NoteMetadataRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	notes := make([]*dto.NoteMetadataResponse, len(rows))
	for i, row := range rows {
		notes[i] = &dto.NoteMetadataResponse{
			Id:        row.Id,
			Title:     row.Title,
			Preview:   row.Preview,
			FolderId:  row.FolderId,
			HasAudio:  row.AudioPath != nil,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}

	c.listCache.Set(ctx, userId.String(), notes)
	return notes, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	metadata, err := uow.NoteMetadataRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if metadata == nil {
		return fmt.Errorf("note not found")
	}

	// Storage cleanup is best effort; the metadata row goes away regardless
	// so the note disappears from listings.
	prefix := noteFolderPrefix(userId, id)
	keys, err := c.store.List(ctx, c.notesBucket, prefix)
	if err != nil {
		c.log.Warn("note", "Failed to list note objects for deletion", map[string]interface{}{
			"note_id": id.String(),
			"error":   err.Error(),
		})
	} else if len(keys) > 0 {
		if err := c.store.Delete(ctx, c.notesBucket, keys...); err != nil {
			c.log.Warn("note", "Failed to delete note objects", map[string]interface{}{
				"note_id": id.String(),
				"error":   err.Error(),
			})
		}
	}

	if err := uow.NoteMetadataRepository().Delete(ctx, id); err != nil {
		return err
	}

	c.debouncer.Cancel(id.String())
	c.invalidateCaches(ctx, userId)
	c.publishEvent(ctx, events.NewNoteDeleted(userId.String(), id.String()))
	return nil
}

func (c *noteService) UpdateTitle(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteTitleRequest) (*dto.SaveNoteResponse, error) {
	note, metadata, err := c.loadDocument(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	if err := c.writeDocument(ctx, userId, note); err != nil {
		return nil, fmt.Errorf("failed to save note document: %w", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteMetadataRepository().UpdateTitle(ctx, userId, metadata.Id, req.Title); err != nil {
		return nil, err
	}

	c.invalidateCaches(ctx, userId)
	return &dto.SaveNoteResponse{Id: req.Id}, nil
}

func (c *noteService) UpdateContent(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteContentRequest) (*dto.SaveNoteResponse, error) {
	note, metadata, err := c.loadDocument(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	note.Transcription = req.Transcription
	note.Summary = req.Summary
	note.StructuredSummary = req.StructuredSummary
	if err := c.writeDocument(ctx, userId, note); err != nil {
		return nil, fmt.Errorf("failed to save note document: %w", err)
	}

	metadata.Preview = preview.Excerpt(req.Summary, preview.DefaultLength)
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteMetadataRepository().Update(ctx, metadata); err != nil {
		return nil, err
	}

	c.invalidateCaches(ctx, userId)
	return &dto.SaveNoteResponse{Id: req.Id}, nil
}

func (c *noteService) Autosave(userId uuid.UUID, req *dto.UpdateNoteContentRequest) {
	// The request context dies with the HTTP call; the trailing write runs
	// on its own.
	c.debouncer.Schedule(req.Id.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := c.UpdateContent(ctx, userId, req); err != nil {
			c.log.Error("note", "Autosave failed", map[string]interface{}{
				"note_id": req.Id.String(),
				"error":   err.Error(),
			})
		}
	})
}

func (c *noteService) CreateEmpty(ctx context.Context, userId uuid.UUID, req *dto.CreateEmptyNoteRequest) (*dto.SaveNoteResponse, error) {
	return c.Save(ctx, userId, &dto.SaveNoteRequest{
		Title:    req.Title,
		Summary:  "No content yet",
		FolderId: req.FolderId,
	})
}

// loadDocument fetches the metadata row and the backing document for a
// read-modify-write update.
func (c *noteService) loadDocument(ctx context.Context, userId, noteId uuid.UUID) (*entity.Note, *entity.NoteMetadata, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	metadata, err := uow.NoteMetadataRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, nil, err
	}
	if metadata == nil {
		return nil, nil, fmt.Errorf("note not found")
	}

	raw, err := c.store.Download(ctx, c.notesBucket, metadata.NotePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch note document: %w", err)
	}

	var note entity.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, nil, fmt.Errorf("failed to parse note document: %w", err)
	}
	return &note, metadata, nil
}

func (c *noteService) publishEvent(ctx context.Context, evt events.Event) {
	if c.eventPublisher == nil {
		return
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.log.Warn("note", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
