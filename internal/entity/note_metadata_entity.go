package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteMetadata is the fast-lookup projection of a note kept in the
// note_metadata table so listings never touch the bucket.
type NoteMetadata struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Preview   string
	NotePath  string
	AudioPath *string
	FolderId  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
