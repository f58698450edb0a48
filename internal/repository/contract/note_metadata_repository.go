package contract

import (
	"context"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteMetadataRepository interface {
	// Upsert inserts the row or replaces every column when the note id
	// already exists. Note ids come from the caller, not the database.
	Upsert(ctx context.Context, metadata *entity.NoteMetadata) error
	Update(ctx context.Context, metadata *entity.NoteMetadata) error
	UpdateTitle(ctx context.Context, userId, noteId uuid.UUID, title string) error
	UpdateFolder(ctx context.Context, userId, noteId uuid.UUID, folderId *uuid.UUID) error
	// DetachFolder clears folder_id on every note in the given folders.
	DetachFolder(ctx context.Context, userId uuid.UUID, folderIds []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteMetadata, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteMetadata, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
