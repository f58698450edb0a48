package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByParentID filters folders by their parent folder.
type ByParentID struct {
	ParentID uuid.UUID
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id = ?", s.ParentID)
}
