package bootstrap

import (
	"context"
	"log"

	"lecturescribe-be/internal/config"
	"lecturescribe-be/internal/controller"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/internal/repository/unitofwork"
	"lecturescribe-be/internal/service"
	pktNats "lecturescribe-be/pkg/nats"
	"lecturescribe-be/pkg/storage"
	"lecturescribe-be/pkg/transcribe/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// tempAudioCleanupTopic links the process pipeline to the cleanup worker.
const tempAudioCleanupTopic = "temp-audio-cleanup"

type Container struct {
	// Controllers
	NoteController      controller.INoteController
	FolderController    controller.IFolderController
	ProcessController   controller.IProcessController
	MigrationController controller.IMigrationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for cmd/migrate
	MigrationService service.IMigrationService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	store := storage.NewOssStore(storage.OssConfig{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		AccessKeySecret: cfg.Storage.AccessKeySecret,
	})

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// AI Provider
	provider, err := factory.New(factory.Config{
		Provider:      cfg.Ai.Provider,
		GeminiApiKey:  cfg.Ai.GeminiApiKey,
		GeminiModel:   cfg.Ai.GeminiModel,
		OpenAiApiKey:  cfg.Ai.OpenAiApiKey,
		OpenAiBaseUrl: cfg.Ai.OpenAiBaseUrl,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize AI Provider: %v", err)
	}
	log.Printf("[INFO] Using AI Provider: %s", cfg.Ai.Provider)

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, tempAudioCleanupTopic)
	consumerService := service.NewConsumerService(pubSub, tempAudioCleanupTopic, store, sysLogger)

	// Shared so note mutations invalidate the cached folder tree.
	treeCache := service.NewFolderTreeCache()

	noteService := service.NewNoteService(
		uowFactory,
		store,
		cfg.Storage.NotesBucket,
		cfg.Storage.UploadsBucket,
		treeCache,
		rdb,
		natsPub,
		sysLogger,
	)
	folderService := service.NewFolderService(uowFactory, treeCache, rdb, natsPub, sysLogger)
	processService := service.NewProcessService(
		noteService,
		provider,
		store,
		cfg.Storage.UploadsBucket,
		publisherService,
		natsPub,
		sysLogger,
	)
	migrationService := service.NewMigrationService(uowFactory, noteService, natsPub, sysLogger)

	// 4. Controllers
	return &Container{
		NoteController:      controller.NewNoteController(noteService, folderService),
		FolderController:    controller.NewFolderController(folderService),
		ProcessController:   controller.NewProcessController(processService),
		MigrationController: controller.NewMigrationController(migrationService),

		ConsumerService:  consumerService,
		MigrationService: migrationService,
	}
}
