package memory

import (
	"context"

	"lecturescribe-be/internal/repository/contract"
	"lecturescribe-be/internal/repository/unitofwork"
)

// RepositoryFactory hands out units of work sharing one in-memory dataset.
// Transactions are no-ops; tests exercise service logic, not isolation.
type RepositoryFactory struct {
	NoteMetadata *NoteMetadataRepository
	Folders      *FolderRepository
	LegacyNotes  *LegacyNoteRepository
}

var _ unitofwork.RepositoryFactory = (*RepositoryFactory)(nil)

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		NoteMetadata: NewNoteMetadataRepository(),
		Folders:      NewFolderRepository(),
		LegacyNotes:  NewLegacyNoteRepository(),
	}
}

func (f *RepositoryFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *RepositoryFactory
}

var _ unitofwork.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) Begin(_ context.Context) error { return nil }
func (u *unitOfWork) Commit() error                 { return nil }
func (u *unitOfWork) Rollback() error               { return nil }

func (u *unitOfWork) NoteMetadataRepository() contract.NoteMetadataRepository {
	return u.factory.NoteMetadata
}

func (u *unitOfWork) FolderRepository() contract.FolderRepository {
	return u.factory.Folders
}

func (u *unitOfWork) LegacyNoteRepository() contract.LegacyNoteRepository {
	return u.factory.LegacyNotes
}
