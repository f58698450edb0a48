package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFolderRequest struct {
	Name     string     `json:"name" validate:"required"`
	ParentId *uuid.UUID `json:"parent_id"`
}

type CreateFolderResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateFolderRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required"`
}

type MoveFolderRequest struct {
	Id       uuid.UUID
	ParentId *uuid.UUID `json:"parent_id"`
}

type FolderResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentId  *uuid.UUID `json:"parent_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// FolderNode is one folder in the assembled tree with its notes and nested
// child folders.
type FolderNode struct {
	Id       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Children []*FolderNode `json:"children"`
	Notes    []*NoteItem   `json:"notes"`
}

// NoteItem is a leaf entry in the folder tree.
type NoteItem struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
}

// FolderTreeResponse is the root of the tree: top-level folders plus notes
// without a folder (or whose folder no longer exists).
type FolderTreeResponse struct {
	Folders []*FolderNode `json:"folders"`
	Notes   []*NoteItem   `json:"notes"`
}
