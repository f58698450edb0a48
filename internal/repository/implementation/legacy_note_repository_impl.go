package implementation

import (
	"context"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/mapper"
	"lecturescribe-be/internal/model"
	"lecturescribe-be/internal/repository/contract"
	"lecturescribe-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LegacyNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LegacyNoteMapper
}

func NewLegacyNoteRepository(db *gorm.DB) contract.LegacyNoteRepository {
	return &LegacyNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewLegacyNoteMapper(),
	}
}

func (r *LegacyNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LegacyNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LegacyNote, error) {
	var models []*model.LegacyNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LegacyNoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LegacyNote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
