package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFolderID filters note metadata rows assigned to one folder.
type ByFolderID struct {
	FolderID uuid.UUID
}

func (s ByFolderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id = ?", s.FolderID)
}

// ByFolderIDs filters note metadata rows assigned to any of the folders.
type ByFolderIDs struct {
	FolderIDs []uuid.UUID
}

func (s ByFolderIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id IN ?", s.FolderIDs)
}
