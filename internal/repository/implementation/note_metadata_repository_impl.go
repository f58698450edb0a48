package implementation

import (
	"context"
	"errors"
	"time"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/mapper"
	"lecturescribe-be/internal/model"
	"lecturescribe-be/internal/repository/contract"
	"lecturescribe-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteMetadataRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMetadataMapper
}

func NewNoteMetadataRepository(db *gorm.DB) contract.NoteMetadataRepository {
	return &NoteMetadataRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMetadataMapper(),
	}
}

func (r *NoteMetadataRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteMetadataRepositoryImpl) Upsert(ctx context.Context, metadata *entity.NoteMetadata) error {
	m := r.mapper.ToModel(metadata)
	// created_at stays untouched on conflict so a re-save keeps the
	// original creation time.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "title", "preview", "note_path",
				"audio_path", "folder_id", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*metadata = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteMetadataRepositoryImpl) Update(ctx context.Context, metadata *entity.NoteMetadata) error {
	m := r.mapper.ToModel(metadata)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*metadata = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteMetadataRepositoryImpl) UpdateTitle(ctx context.Context, userId, noteId uuid.UUID, title string) error {
	return r.db.WithContext(ctx).
		Model(&model.NoteMetadata{}).
		Where("id = ? AND user_id = ?", noteId, userId).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": time.Now(),
		}).Error
}

func (r *NoteMetadataRepositoryImpl) UpdateFolder(ctx context.Context, userId, noteId uuid.UUID, folderId *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.NoteMetadata{}).
		Where("id = ? AND user_id = ?", noteId, userId).
		Updates(map[string]interface{}{
			"folder_id":  folderId,
			"updated_at": time.Now(),
		}).Error
}

func (r *NoteMetadataRepositoryImpl) DetachFolder(ctx context.Context, userId uuid.UUID, folderIds []uuid.UUID) error {
	if len(folderIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.NoteMetadata{}).
		Where("user_id = ? AND folder_id IN ?", userId, folderIds).
		Updates(map[string]interface{}{
			"folder_id":  nil,
			"updated_at": time.Now(),
		}).Error
}

func (r *NoteMetadataRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.NoteMetadata{}, id).Error
}

func (r *NoteMetadataRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteMetadata, error) {
	var m model.NoteMetadata
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteMetadataRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteMetadata, error) {
	var models []*model.NoteMetadata
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteMetadataRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.NoteMetadata{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
