package service

import (
	"context"
	"encoding/json"

	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/pkg/logger"
	"lecturescribe-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the temp-audio cleanup topic and deletes the
// temporary uploads left behind by the processing pipeline.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     storage.ObjectStore
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	store storage.ObjectStore,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CleanupTempAudioMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal cleanup message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.store.Delete(ctx, payload.Bucket, payload.Key); err != nil {
		// Cleanup is best effort; the temp bucket has lifecycle rules as a
		// backstop.
		cs.log.Warn("consumer", "Failed to delete temp audio", map[string]interface{}{
			"bucket": payload.Bucket,
			"key":    payload.Key,
			"error":  err.Error(),
		})
		msg.Ack()
		return
	}

	cs.log.Info("consumer", "Deleted temp audio", map[string]interface{}{
		"bucket": payload.Bucket,
		"key":    payload.Key,
	})
	msg.Ack()
}
