package mapper

import (
	"time"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/model"
)

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.Folder{
		Id:        f.Id,
		Name:      f.Name,
		ParentId:  f.ParentId,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.Folder{
		Id:        f.Id,
		Name:      f.Name,
		ParentId:  f.ParentId,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FolderMapper) ToEntities(folders []*model.Folder) []*entity.Folder {
	entities := make([]*entity.Folder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FolderMapper) ToModels(folders []*entity.Folder) []*model.Folder {
	models := make([]*model.Folder, len(folders))
	for i, f := range folders {
		models[i] = m.ToModel(f)
	}
	return models
}
