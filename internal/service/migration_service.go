package service

import (
	"context"
	"encoding/json"
	"fmt"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/internal/repository/specification"
	"lecturescribe-be/internal/repository/unitofwork"
	"lecturescribe-be/pkg/events"
	pktNats "lecturescribe-be/pkg/nats"
	"lecturescribe-be/pkg/summary"

	"github.com/google/uuid"
)

type IMigrationService interface {
	// Migrate copies every legacy note owned by the user into the current
	// storage layout. Re-running on an unchanged table rewrites the same
	// notes in place because ids carry over.
	Migrate(ctx context.Context, userId uuid.UUID) (*dto.MigrationResult, error)
}

type migrationService struct {
	uowFactory     unitofwork.RepositoryFactory
	noteService    INoteService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewMigrationService(
	uowFactory unitofwork.RepositoryFactory,
	noteService INoteService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IMigrationService {
	return &migrationService{
		uowFactory:     uowFactory,
		noteService:    noteService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (c *migrationService) Migrate(ctx context.Context, userId uuid.UUID) (*dto.MigrationResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	legacyNotes, err := uow.LegacyNoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := &dto.MigrationResult{Errors: []string{}}
	for _, legacy := range legacyNotes {
		if err := c.migrateOne(ctx, userId, legacy); err != nil {
			c.log.Warn("migration", "Failed to migrate note", map[string]interface{}{
				"note_id": legacy.Id.String(),
				"error":   err.Error(),
			})
			result.Errors = append(result.Errors, fmt.Sprintf("note %s: %v", legacy.Id, err))
			continue
		}
		result.Count++
	}
	result.Success = len(result.Errors) == 0

	if c.eventPublisher != nil {
		evt := events.NewNotesMigrated(userId.String(), result.Count, len(result.Errors))
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.log.Warn("migration", "Failed to publish event", map[string]interface{}{
				"event": evt.EventType(),
				"error": err.Error(),
			})
		}
	}

	return result, nil
}

func (c *migrationService) migrateOne(ctx context.Context, userId uuid.UUID, legacy *entity.LegacyNote) error {
	// The query is already user scoped, re-check anyway before writing
	// under this user's storage prefix.
	if legacy.UserId != userId {
		return fmt.Errorf("note is not owned by the requesting user")
	}

	structured := legacyStructuredSummary(legacy)

	title := legacy.Title
	if title == "" {
		title = "Untitled Note"
	}

	audioUrl := ""
	if legacy.AudioUrl != nil {
		audioUrl = *legacy.AudioUrl
	}

	// Keeping the legacy id makes the migration idempotent: a re-run
	// rewrites the same note instead of duplicating it.
	_, err := c.noteService.Save(ctx, userId, &dto.SaveNoteRequest{
		Id:                legacy.Id,
		Title:             title,
		Transcription:     legacy.Transcription,
		Summary:           legacy.RawSummary,
		StructuredSummary: structured,
		AudioUrl:          audioUrl,
	})
	return err
}

// legacyStructuredSummary restores the stored structured summary, falling
// back to re-parsing the raw markdown when the stored JSON is absent or
// corrupt.
func legacyStructuredSummary(legacy *entity.LegacyNote) *summary.Structured {
	if len(legacy.StructuredSummary) > 0 {
		var structured summary.Structured
		if err := json.Unmarshal(legacy.StructuredSummary, &structured); err == nil {
			return &structured
		}
	}
	if legacy.RawSummary != "" {
		return summary.Parse(legacy.RawSummary)
	}
	return nil
}
