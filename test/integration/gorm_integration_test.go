package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"lecturescribe-be/internal/entity"
	"lecturescribe-be/internal/repository/specification"
	"lecturescribe-be/internal/repository/unitofwork"
	"lecturescribe-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.NoteMetadataRepository())
	assert.NotNil(t, uow.FolderRepository())
	assert.NotNil(t, uow.LegacyNoteRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Note Metadata Repository", func(t *testing.T) {
		count, err := uow.NoteMetadataRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Note metadata count: %d", count)
	})

	t.Run("Check Folder Repository", func(t *testing.T) {
		count, err := uow.FolderRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Folder count: %d", count)
	})

	t.Run("Upsert And Fetch Note Metadata", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()
		noteId := uuid.New()

		metadata := &entity.NoteMetadata{
			Id:        noteId,
			UserId:    userId,
			Title:     "Integration Note",
			Preview:   "Integration preview",
			NotePath:  userId.String() + "/" + noteId.String() + "/note.json",
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.NoteMetadataRepository().Upsert(ctx, metadata))

		first, err := uow.NoteMetadataRepository().FindOne(ctx,
			specification.ByID{ID: noteId},
			specification.UserOwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, first)

		// A second upsert with the same id must update, not duplicate.
		metadata.Title = "Integration Note v2"
		metadata.CreatedAt = time.Now().Add(time.Hour)
		require.NoError(t, uow.NoteMetadataRepository().Upsert(ctx, metadata))

		fetched, err := uow.NoteMetadataRepository().FindOne(ctx,
			specification.ByID{ID: noteId},
			specification.UserOwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "Integration Note v2", fetched.Title)

		// The conflict update leaves the original creation time alone.
		assert.WithinDuration(t, first.CreatedAt, fetched.CreatedAt, time.Second)

		// Cleanup
		assert.NoError(t, uow.NoteMetadataRepository().Delete(ctx, noteId))
	})

	t.Run("Folder Round Trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		folder := &entity.Folder{
			Id:        uuid.New(),
			Name:      "Integration Folder",
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.FolderRepository().Create(ctx, folder))

		fetched, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: folder.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "Integration Folder", fetched.Name)

		// Cleanup
		assert.NoError(t, uow.FolderRepository().Delete(ctx, folder.Id))
	})
}
