package memory

import (
	"context"
	"sync"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/repository/contract"
	"lecturescribe-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LegacyNoteRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*entity.LegacyNote
}

var _ contract.LegacyNoteRepository = (*LegacyNoteRepository)(nil)

func NewLegacyNoteRepository() *LegacyNoteRepository {
	return &LegacyNoteRepository{
		rows: make(map[uuid.UUID]*entity.LegacyNote),
	}
}

// Seed loads legacy rows for tests.
func (r *LegacyNoteRepository) Seed(notes ...*entity.LegacyNote) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notes {
		copied := *n
		r.rows[n.Id] = &copied
	}
}

func (r *LegacyNoteRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.LegacyNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.LegacyNote
	for _, row := range r.rows {
		if matches(record{Id: row.Id, UserId: row.UserId}, specs) {
			copied := *row
			out = append(out, &copied)
		}
	}

	if order, ok := orderSpec(specs); ok && order.Field == "created_at" {
		sortStable(out, order.Desc, func(a, b *entity.LegacyNote) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		})
	}
	return out, nil
}

func (r *LegacyNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
