package service

import (
	"context"
	"fmt"
	"time"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/internal/repository/specification"
	"lecturescribe-be/internal/repository/unitofwork"
	"lecturescribe-be/pkg/events"
	pktNats "lecturescribe-be/pkg/nats"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	folderTreeCacheTTL     = 30 * time.Second
	folderTreeCacheCleanup = 5 * time.Minute
)

// NewFolderTreeCache builds the per-user folder-tree cache. One instance is
// shared between the folder and note services so any note or folder mutation
// invalidates the cached tree.
func NewFolderTreeCache() *gocache.Cache {
	return gocache.New(folderTreeCacheTTL, folderTreeCacheCleanup)
}

type IFolderService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error)
	Move(ctx context.Context, userId uuid.UUID, req *dto.MoveFolderRequest) (*dto.FolderResponse, error)
	MoveNote(ctx context.Context, userId uuid.UUID, req *dto.MoveNoteRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Tree(ctx context.Context, userId uuid.UUID) (*dto.FolderTreeResponse, error)
}

type folderService struct {
	uowFactory     unitofwork.RepositoryFactory
	treeCache      *gocache.Cache
	noteListCache  *noteListCache
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	treeCache *gocache.Cache,
	redisClient *redis.Client,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IFolderService {
	return &folderService{
		uowFactory:     uowFactory,
		treeCache:      treeCache,
		noteListCache:  newNoteListCache(redisClient),
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (c *folderService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if req.ParentId != nil {
		parent, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: *req.ParentId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent folder not found")
		}
	}

	folder := entity.Folder{
		Id:        uuid.New(),
		Name:      req.Name,
		ParentId:  req.ParentId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	c.treeCache.Delete(userId.String())
	return &dto.CreateFolderResponse{Id: folder.Id}, nil
}

func (c *folderService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, fmt.Errorf("folder not found")
	}

	folder.Name = req.Name
	if err := uow.FolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}

	c.treeCache.Delete(userId.String())
	return folderResponse(folder), nil
}

func (c *folderService) Move(ctx context.Context, userId uuid.UUID, req *dto.MoveFolderRequest) (*dto.FolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, fmt.Errorf("folder not found")
	}

	if req.ParentId != nil {
		if err := c.rejectCycle(ctx, uow, userId, req.Id, *req.ParentId); err != nil {
			return nil, err
		}
	}

	folder.ParentId = req.ParentId
	if err := uow.FolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}

	c.treeCache.Delete(userId.String())
	return folderResponse(folder), nil
}

// rejectCycle walks up the ancestor chain of the target parent. Hitting the
// folder being moved, or any node twice, means the move would create a
// cycle.
func (c *folderService) rejectCycle(ctx context.Context, uow unitofwork.UnitOfWork, userId, folderId, newParentId uuid.UUID) error {
	if newParentId == folderId {
		return fmt.Errorf("cannot move a folder into itself")
	}

	visited := map[uuid.UUID]bool{}
	current := newParentId
	for {
		if current == folderId {
			return fmt.Errorf("cannot move a folder into its own descendant")
		}
		if visited[current] {
			return fmt.Errorf("folder hierarchy contains a cycle")
		}
		visited[current] = true

		node, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: current},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if node == nil {
			return fmt.Errorf("destination folder not found")
		}
		if node.ParentId == nil {
			return nil
		}
		current = *node.ParentId
	}
}

func (c *folderService) MoveNote(ctx context.Context, userId uuid.UUID, req *dto.MoveNoteRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteMetadataRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return fmt.Errorf("note not found")
	}

	if req.FolderId != nil {
		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: *req.FolderId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if folder == nil {
			return fmt.Errorf("destination folder not found")
		}
	}

	if err := uow.NoteMetadataRepository().UpdateFolder(ctx, userId, req.Id, req.FolderId); err != nil {
		return err
	}

	c.treeCache.Delete(userId.String())
	c.noteListCache.Invalidate(ctx, userId.String())
	return nil
}

func (c *folderService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return fmt.Errorf("folder not found")
	}

	descendants, err := c.collectDescendants(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	// Notes are never deleted with their folder, only detached.
	affected := append([]uuid.UUID{id}, descendants...)
	if err := uow.NoteMetadataRepository().DetachFolder(ctx, userId, affected); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.FolderRepository().DeleteByIds(ctx, descendants); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.FolderRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.treeCache.Delete(userId.String())
	c.noteListCache.Invalidate(ctx, userId.String())
	c.publishEvent(ctx, events.NewFolderDeleted(userId.String(), id.String(), len(descendants)))
	return nil
}

// collectDescendants walks the folder tree breadth first, guarded by a
// visited set so a corrupt parent chain cannot loop forever.
func (c *folderService) collectDescendants(ctx context.Context, uow unitofwork.UnitOfWork, userId, rootId uuid.UUID) ([]uuid.UUID, error) {
	var descendants []uuid.UUID
	visited := map[uuid.UUID]bool{rootId: true}
	queue := []uuid.UUID{rootId}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := uow.FolderRepository().FindAll(ctx,
			specification.ByParentID{ParentID: current},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.Id] {
				continue
			}
			visited[child.Id] = true
			descendants = append(descendants, child.Id)
			queue = append(queue, child.Id)
		}
	}
	return descendants, nil
}

func (c *folderService) Tree(ctx context.Context, userId uuid.UUID) (*dto.FolderTreeResponse, error) {
	if cached, ok := c.treeCache.Get(userId.String()); ok {
		return cached.(*dto.FolderTreeResponse), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	notes, err := uow.NoteMetadataRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	tree := buildFolderTree(folders, notes)
	c.treeCache.Set(userId.String(), tree, gocache.DefaultExpiration)
	return tree, nil
}

// buildFolderTree assembles the nested folder structure. Folders and notes
// whose parent no longer exists fall back to the root instead of vanishing.
func buildFolderTree(folders []*entity.Folder, notes []*entity.NoteMetadata) *dto.FolderTreeResponse {
	nodes := make(map[uuid.UUID]*dto.FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.Id] = &dto.FolderNode{
			Id:       f.Id,
			Name:     f.Name,
			Children: []*dto.FolderNode{},
			Notes:    []*dto.NoteItem{},
		}
	}

	tree := &dto.FolderTreeResponse{
		Folders: []*dto.FolderNode{},
		Notes:   []*dto.NoteItem{},
	}

	for _, f := range folders {
		node := nodes[f.Id]
		if f.ParentId != nil {
			if parent, ok := nodes[*f.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		tree.Folders = append(tree.Folders, node)
	}

	for _, n := range notes {
		item := &dto.NoteItem{
			Id:        n.Id,
			Title:     n.Title,
			Preview:   n.Preview,
			CreatedAt: n.CreatedAt,
		}
		if n.FolderId != nil {
			if node, ok := nodes[*n.FolderId]; ok {
				node.Notes = append(node.Notes, item)
				continue
			}
		}
		tree.Notes = append(tree.Notes, item)
	}

	return tree
}

func folderResponse(f *entity.Folder) *dto.FolderResponse {
	return &dto.FolderResponse{
		Id:        f.Id,
		Name:      f.Name,
		ParentId:  f.ParentId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (c *folderService) publishEvent(ctx context.Context, evt events.Event) {
	if c.eventPublisher == nil {
		return
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.log.Warn("folder", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
