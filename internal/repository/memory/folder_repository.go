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

type FolderRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*entity.Folder
}

var _ contract.FolderRepository = (*FolderRepository)(nil)

func NewFolderRepository() *FolderRepository {
	return &FolderRepository{
		rows: make(map[uuid.UUID]*entity.Folder),
	}
}

func cloneFolder(f *entity.Folder) *entity.Folder {
	if f == nil {
		return nil
	}
	out := *f
	if f.ParentId != nil {
		id := *f.ParentId
		out.ParentId = &id
	}
	if f.UpdatedAt != nil {
		t := *f.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func (r *FolderRepository) Create(_ context.Context, folder *entity.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if folder.Id == uuid.Nil {
		folder.Id = uuid.New()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	r.rows[folder.Id] = cloneFolder(folder)
	return nil
}

func (r *FolderRepository) Update(_ context.Context, folder *entity.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	folder.UpdatedAt = &now
	r.rows[folder.Id] = cloneFolder(folder)
	return nil
}

func (r *FolderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

func (r *FolderRepository) DeleteByIds(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

func (r *FolderRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if matches(record{Id: row.Id, UserId: row.UserId, GroupId: row.ParentId}, specs) {
			return cloneFolder(row), nil
		}
	}
	return nil, nil
}

func (r *FolderRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Folder
	for _, row := range r.rows {
		if matches(record{Id: row.Id, UserId: row.UserId, GroupId: row.ParentId}, specs) {
			out = append(out, cloneFolder(row))
		}
	}

	if order, ok := orderSpec(specs); ok && order.Field == "created_at" {
		sortStable(out, order.Desc, func(a, b *entity.Folder) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		})
	}
	return out, nil
}

func (r *FolderRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
