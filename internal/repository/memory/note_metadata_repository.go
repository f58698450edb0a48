package memory

import (
	"context"
	"sync"
	"time"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/repository/contract"
	"lecturescribe-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteMetadataRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*entity.NoteMetadata
}

var _ contract.NoteMetadataRepository = (*NoteMetadataRepository)(nil)

func NewNoteMetadataRepository() *NoteMetadataRepository {
	return &NoteMetadataRepository{
		rows: make(map[uuid.UUID]*entity.NoteMetadata),
	}
}

func cloneMetadata(m *entity.NoteMetadata) *entity.NoteMetadata {
	if m == nil {
		return nil
	}
	out := *m
	if m.FolderId != nil {
		id := *m.FolderId
		out.FolderId = &id
	}
	if m.AudioPath != nil {
		p := *m.AudioPath
		out.AudioPath = &p
	}
	if m.UpdatedAt != nil {
		t := *m.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func (r *NoteMetadataRepository) Upsert(_ context.Context, metadata *entity.NoteMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.rows[metadata.Id]; ok {
		metadata.CreatedAt = existing.CreatedAt
	} else if metadata.CreatedAt.IsZero() {
		metadata.CreatedAt = time.Now()
	}
	now := time.Now()
	metadata.UpdatedAt = &now
	r.rows[metadata.Id] = cloneMetadata(metadata)
	return nil
}

func (r *NoteMetadataRepository) Update(_ context.Context, metadata *entity.NoteMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	metadata.UpdatedAt = &now
	r.rows[metadata.Id] = cloneMetadata(metadata)
	return nil
}

func (r *NoteMetadataRepository) UpdateTitle(_ context.Context, userId, noteId uuid.UUID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if row, ok := r.rows[noteId]; ok && row.UserId == userId {
		row.Title = title
		now := time.Now()
		row.UpdatedAt = &now
	}
	return nil
}

func (r *NoteMetadataRepository) UpdateFolder(_ context.Context, userId, noteId uuid.UUID, folderId *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if row, ok := r.rows[noteId]; ok && row.UserId == userId {
		row.FolderId = folderId
		now := time.Now()
		row.UpdatedAt = &now
	}
	return nil
}

func (r *NoteMetadataRepository) DetachFolder(_ context.Context, userId uuid.UUID, folderIds []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folderSet := make(map[uuid.UUID]bool, len(folderIds))
	for _, id := range folderIds {
		folderSet[id] = true
	}

	for _, row := range r.rows {
		if row.UserId == userId && row.FolderId != nil && folderSet[*row.FolderId] {
			row.FolderId = nil
			now := time.Now()
			row.UpdatedAt = &now
		}
	}
	return nil
}

func (r *NoteMetadataRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

func (r *NoteMetadataRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.NoteMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if matches(record{Id: row.Id, UserId: row.UserId, GroupId: row.FolderId}, specs) {
			return cloneMetadata(row), nil
		}
	}
	return nil, nil
}

func (r *NoteMetadataRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.NoteMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.NoteMetadata
	for _, row := range r.rows {
		if matches(record{Id: row.Id, UserId: row.UserId, GroupId: row.FolderId}, specs) {
			out = append(out, cloneMetadata(row))
		}
	}

	if order, ok := orderSpec(specs); ok && order.Field == "created_at" {
		sortStable(out, order.Desc, func(a, b *entity.NoteMetadata) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		})
	}
	return out, nil
}

func (r *NoteMetadataRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
