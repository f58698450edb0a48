package events

import "time"

const (
	NoteCreatedType    = "NOTE_CREATED"
	NoteProcessedType  = "NOTE_PROCESSED"
	NoteDeletedType    = "NOTE_DELETED"
	FolderDeletedType  = "FOLDER_DELETED"
	NotesMigratedType  = "NOTES_MIGRATED"
)

// NewNoteCreated fires after a note document and its metadata are saved.
func NewNoteCreated(userId, noteId, title string) Event {
	return BaseEvent{
		Type: NoteCreatedType,
		Data: map[string]interface{}{
			"user_id": userId,
			"note_id": noteId,
			"title":   title,
		},
		OccurredAt: time.Now(),
	}
}

// NewNoteProcessed fires after the transcription pipeline persisted a note
// from audio.
func NewNoteProcessed(userId, noteId string, transcriptionLength int) Event {
	return BaseEvent{
		Type: NoteProcessedType,
		Data: map[string]interface{}{
			"user_id":              userId,
			"note_id":              noteId,
			"transcription_length": transcriptionLength,
		},
		OccurredAt: time.Now(),
	}
}

func NewNoteDeleted(userId, noteId string) Event {
	return BaseEvent{
		Type: NoteDeletedType,
		Data: map[string]interface{}{
			"user_id": userId,
			"note_id": noteId,
		},
		OccurredAt: time.Now(),
	}
}

func NewFolderDeleted(userId, folderId string, descendantCount int) Event {
	return BaseEvent{
		Type: FolderDeletedType,
		Data: map[string]interface{}{
			"user_id":          userId,
			"folder_id":        folderId,
			"descendant_count": descendantCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewNotesMigrated(userId string, count int, errorCount int) Event {
	return BaseEvent{
		Type: NotesMigratedType,
		Data: map[string]interface{}{
			"user_id":     userId,
			"count":       count,
			"error_count": errorCount,
		},
		OccurredAt: time.Now(),
	}
}
