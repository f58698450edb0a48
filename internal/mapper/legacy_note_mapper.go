package mapper

import (
	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/model"

	"gorm.io/datatypes"
)

type LegacyNoteMapper struct{}

func NewLegacyNoteMapper() *LegacyNoteMapper {
	return &LegacyNoteMapper{}
}

func (m *LegacyNoteMapper) ToEntity(n *model.LegacyNote) *entity.LegacyNote {
	if n == nil {
		return nil
	}

	return &entity.LegacyNote{
		Id:                n.Id,
		UserId:            n.UserId,
		Title:             n.Title,
		Transcription:     n.Content,
		RawSummary:        n.RawSummary,
		StructuredSummary: []byte(n.StructuredSummary),
		AudioUrl:          n.AudioUrl,
		CreatedAt:         n.CreatedAt,
	}
}

func (m *LegacyNoteMapper) ToModel(n *entity.LegacyNote) *model.LegacyNote {
	if n == nil {
		return nil
	}

	return &model.LegacyNote{
		Id:                n.Id,
		UserId:            n.UserId,
		Title:             n.Title,
		Content:           n.Transcription,
		RawSummary:        n.RawSummary,
		StructuredSummary: datatypes.JSON(n.StructuredSummary),
		AudioUrl:          n.AudioUrl,
		CreatedAt:         n.CreatedAt,
	}
}

func (m *LegacyNoteMapper) ToEntities(rows []*model.LegacyNote) []*entity.LegacyNote {
	entities := make([]*entity.LegacyNote, len(rows))
	for i, n := range rows {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
