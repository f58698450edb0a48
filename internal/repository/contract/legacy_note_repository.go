package contract

import (
	"context"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/repository/specification"
)

// LegacyNoteRepository reads the pre-migration notes table. It is
// intentionally read-only; migrated rows stay in place as the source of
// truth for re-runs.
type LegacyNoteRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LegacyNote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
