package unitofwork

import (
	"context"

	"lecturescribe-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteMetadataRepository() contract.NoteMetadataRepository
	FolderRepository() contract.FolderRepository
	LegacyNoteRepository() contract.LegacyNoteRepository
}
