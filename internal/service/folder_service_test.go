package service

import (
	"context"
	"testing"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/internal/repository/memory"
	"lecturescribe-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFolderService(t *testing.T) (IFolderService, INoteService, *memory.RepositoryFactory) {
	t.Helper()
	repos := memory.NewRepositoryFactory()
	store := storage.NewMemoryStore()
	log := logger.NewNoopLogger()
	treeCache := NewFolderTreeCache()
	noteSvc := NewNoteService(repos, store, testNotesBucket, testUploadsBucket, treeCache, nil, nil, log)
	folderSvc := NewFolderService(repos, treeCache, nil, nil, log)
	return folderSvc, noteSvc, repos
}

func mustCreateFolder(t *testing.T, svc IFolderService, userId uuid.UUID, name string, parentId *uuid.UUID) uuid.UUID {
	t.Helper()
	res, err := svc.Create(context.Background(), userId, &dto.CreateFolderRequest{Name: name, ParentId: parentId})
	require.NoError(t, err)
	return res.Id
}

func TestCreateFolderRejectsMissingParent(t *testing.T) {
	svc, _, _ := newTestFolderService(t)
	missing := uuid.New()

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateFolderRequest{
		Name:     "Orphan",
		ParentId: &missing,
	})
	assert.Error(t, err)
}

func TestMoveFolderIntoItselfRejected(t *testing.T) {
	svc, _, _ := newTestFolderService(t)
	userId := uuid.New()
	folderId := mustCreateFolder(t, svc, userId, "Physics", nil)

	_, err := svc.Move(context.Background(), userId, &dto.MoveFolderRequest{
		Id:       folderId,
		ParentId: &folderId,
	})
	assert.ErrorContains(t, err, "itself")
}

func TestMoveFolderIntoDescendantRejected(t *testing.T) {
	svc, _, repos := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	rootId := mustCreateFolder(t, svc, userId, "Root", nil)
	childId := mustCreateFolder(t, svc, userId, "Child", &rootId)
	grandchildId := mustCreateFolder(t, svc, userId, "Grandchild", &childId)

	_, err := svc.Move(ctx, userId, &dto.MoveFolderRequest{
		Id:       rootId,
		ParentId: &grandchildId,
	})
	require.ErrorContains(t, err, "descendant")

	// The rejected move leaves the hierarchy untouched.
	folders, err := repos.Folders.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 3)
	for _, f := range folders {
		switch f.Id {
		case rootId:
			assert.Nil(t, f.ParentId)
		case childId:
			assert.Equal(t, rootId, *f.ParentId)
		case grandchildId:
			assert.Equal(t, childId, *f.ParentId)
		}
	}
}

func TestMoveFolderToRoot(t *testing.T) {
	svc, _, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	rootId := mustCreateFolder(t, svc, userId, "Root", nil)
	childId := mustCreateFolder(t, svc, userId, "Child", &rootId)

	res, err := svc.Move(ctx, userId, &dto.MoveFolderRequest{Id: childId, ParentId: nil})
	require.NoError(t, err)
	assert.Nil(t, res.ParentId)
}

func TestDeleteFolderDetachesNotesAndRemovesSubtree(t *testing.T) {
	folderSvc, noteSvc, repos := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	rootId := mustCreateFolder(t, folderSvc, userId, "Semester 1", nil)
	childId := mustCreateFolder(t, folderSvc, userId, "Week 2", &rootId)

	_, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Intro", FolderId: &rootId})
	require.NoError(t, err)
	_, err = noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Thermodynamics", FolderId: &childId})
	require.NoError(t, err)

	require.NoError(t, folderSvc.Delete(ctx, userId, rootId))

	folders, err := repos.Folders.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, folders, "the whole subtree is gone")

	// Notes survive folder deletion, detached to the root.
	notes, err := noteSvc.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.Nil(t, n.FolderId)
	}
}

func TestMoveNoteValidatesDestination(t *testing.T) {
	folderSvc, noteSvc, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	saved, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Wandering note"})
	require.NoError(t, err)

	missing := uuid.New()
	err = folderSvc.MoveNote(ctx, userId, &dto.MoveNoteRequest{Id: saved.Id, FolderId: &missing})
	assert.ErrorContains(t, err, "destination folder not found")
}

func TestMoveNoteIntoFolderAndBackToRoot(t *testing.T) {
	folderSvc, noteSvc, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	folderId := mustCreateFolder(t, folderSvc, userId, "Biology", nil)
	saved, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Mitosis"})
	require.NoError(t, err)

	require.NoError(t, folderSvc.MoveNote(ctx, userId, &dto.MoveNoteRequest{Id: saved.Id, FolderId: &folderId}))

	notes, err := noteSvc.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].FolderId)
	assert.Equal(t, folderId, *notes[0].FolderId)

	require.NoError(t, folderSvc.MoveNote(ctx, userId, &dto.MoveNoteRequest{Id: saved.Id, FolderId: nil}))

	notes, err = noteSvc.List(ctx, userId)
	require.NoError(t, err)
	assert.Nil(t, notes[0].FolderId)
}

func TestTreeNestsFoldersAndNotes(t *testing.T) {
	folderSvc, noteSvc, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	rootId := mustCreateFolder(t, folderSvc, userId, "Chemistry", nil)
	childId := mustCreateFolder(t, folderSvc, userId, "Organic", &rootId)

	_, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Alkanes", FolderId: &childId})
	require.NoError(t, err)
	_, err = noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Loose note"})
	require.NoError(t, err)

	tree, err := folderSvc.Tree(ctx, userId)
	require.NoError(t, err)

	require.Len(t, tree.Folders, 1)
	root := tree.Folders[0]
	assert.Equal(t, "Chemistry", root.Name)
	require.Len(t, root.Children, 1)
	require.Len(t, root.Children[0].Notes, 1)
	assert.Equal(t, "Alkanes", root.Children[0].Notes[0].Title)

	require.Len(t, tree.Notes, 1)
	assert.Equal(t, "Loose note", tree.Notes[0].Title)
}

func TestTreeReflectsNoteDeleteImmediately(t *testing.T) {
	folderSvc, noteSvc, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	folderId := mustCreateFolder(t, folderSvc, userId, "Physics", nil)
	saved, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Doomed", FolderId: &folderId})
	require.NoError(t, err)

	// Warm the tree cache before the note mutation.
	tree, err := folderSvc.Tree(ctx, userId)
	require.NoError(t, err)
	require.Len(t, tree.Folders[0].Notes, 1)

	require.NoError(t, noteSvc.Delete(ctx, userId, saved.Id))

	tree, err = folderSvc.Tree(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, tree.Folders[0].Notes, "a deleted note must not linger in the cached tree")
}

func TestTreeReflectsNewNoteImmediately(t *testing.T) {
	folderSvc, noteSvc, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	folderId := mustCreateFolder(t, folderSvc, userId, "Biology", nil)

	tree, err := folderSvc.Tree(ctx, userId)
	require.NoError(t, err)
	require.Empty(t, tree.Folders[0].Notes)

	_, err = noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Fresh", FolderId: &folderId})
	require.NoError(t, err)

	tree, err = folderSvc.Tree(ctx, userId)
	require.NoError(t, err)
	require.Len(t, tree.Folders[0].Notes, 1)
	assert.Equal(t, "Fresh", tree.Folders[0].Notes[0].Title)
}

func TestTreeReflectsRetitleImmediately(t *testing.T) {
	folderSvc, noteSvc, _ := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	folderId := mustCreateFolder(t, folderSvc, userId, "Chemistry", nil)
	saved, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Draft", FolderId: &folderId})
	require.NoError(t, err)

	_, err = folderSvc.Tree(ctx, userId)
	require.NoError(t, err)

	_, err = noteSvc.UpdateTitle(ctx, userId, &dto.UpdateNoteTitleRequest{Id: saved.Id, Title: "Final"})
	require.NoError(t, err)

	tree, err := folderSvc.Tree(ctx, userId)
	require.NoError(t, err)
	require.Len(t, tree.Folders[0].Notes, 1)
	assert.Equal(t, "Final", tree.Folders[0].Notes[0].Title)
}

func TestTreeOrphansFallBackToRoot(t *testing.T) {
	folderSvc, noteSvc, repos := newTestFolderService(t)
	ctx := context.Background()
	userId := uuid.New()

	folderId := mustCreateFolder(t, folderSvc, userId, "Ghost parent", nil)
	saved, err := noteSvc.Save(ctx, userId, &dto.SaveNoteRequest{Title: "Stranded", FolderId: &folderId})
	require.NoError(t, err)

	// Remove the folder row directly, leaving the note pointing at nothing.
	require.NoError(t, repos.Folders.Delete(ctx, folderId))

	tree, err := folderSvc.Tree(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, tree.Folders)
	require.Len(t, tree.Notes, 1)
	assert.Equal(t, saved.Id, tree.Notes[0].Id)
}
