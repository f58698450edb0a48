package mapper

import (
	"time"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/model"
)

type NoteMetadataMapper struct{}

func NewNoteMetadataMapper() *NoteMetadataMapper {
	return &NoteMetadataMapper{}
}

func (m *NoteMetadataMapper) ToEntity(n *model.NoteMetadata) *entity.NoteMetadata {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.NoteMetadata{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Preview:   n.Preview,
		NotePath:  n.NotePath,
		AudioPath: n.AudioPath,
		FolderId:  n.FolderId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMetadataMapper) ToModel(n *entity.NoteMetadata) *model.NoteMetadata {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.NoteMetadata{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Preview:   n.Preview,
		NotePath:  n.NotePath,
		AudioPath: n.AudioPath,
		FolderId:  n.FolderId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMetadataMapper) ToEntities(rows []*model.NoteMetadata) []*entity.NoteMetadata {
	entities := make([]*entity.NoteMetadata, len(rows))
	for i, n := range rows {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMetadataMapper) ToModels(rows []*entity.NoteMetadata) []*model.NoteMetadata {
	models := make([]*model.NoteMetadata, len(rows))
	for i, n := range rows {
		models[i] = m.ToModel(n)
	}
	return models
}
