package service

import (
	"context"
	"encoding/json"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"golang.org/x/sync/errgroup"
)

const (
	consumerModule           = "ingest_consumer"
	defaultIngestConcurrency = 4
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	assistant   IAssistantService
	logger      logger.ILogger
	concurrency int
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	assistant IAssistantService,
	log logger.ILogger,
	concurrency int,
) IConsumerService {
	if concurrency < 1 {
		concurrency = defaultIngestConcurrency
	}
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		assistant:   assistant,
		logger:      log,
		concurrency: concurrency,
	}
}

// Consume subscribes to the ingestion topic and processes messages in the
// background until ctx is cancelled. Up to concurrency files are ingested at
// once; further messages wait for a free slot.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		var g errgroup.Group
		g.SetLimit(cs.concurrency)
		for msg := range messages {
			payload, ok := cs.decode(msg)
			// The subscriber holds back the next message until this one is
			// acked, so ack before ingesting. Ingest records failures on the
			// file row and never asks for redelivery.
			msg.Ack()
			if !ok {
				continue
			}
			g.Go(func() error {
				cs.ingest(ctx, payload)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return nil
}

func (cs *consumerService) decode(msg *message.Message) (dto.IngestFileMessage, bool) {
	var payload dto.IngestFileMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal ingest message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return payload, false
	}
	return payload, true
}

func (cs *consumerService) ingest(ctx context.Context, payload dto.IngestFileMessage) {
	count := cs.assistant.Ingest(ctx, payload.FileId, payload.Path, payload.ContentType, payload.LessonPlanId)
	cs.logger.Info(consumerModule, "Ingest message processed", map[string]interface{}{
		"file_id": payload.FileId.String(),
		"chunks":  count,
	})
}
