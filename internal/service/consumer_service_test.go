package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"lessoncraft-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingestCall struct {
	fileId      uuid.UUID
	path        string
	contentType string
	scopeId     *uuid.UUID
}

type recordingAssistant struct {
	IAssistantService
	mu      sync.Mutex
	calls   []ingestCall
	release chan struct{}
}

func (r *recordingAssistant) Ingest(ctx context.Context, fileId uuid.UUID, filePath string, contentType string, scopeId *uuid.UUID) int {
	r.mu.Lock()
	r.calls = append(r.calls, ingestCall{fileId: fileId, path: filePath, contentType: contentType, scopeId: scopeId})
	r.mu.Unlock()
	if r.release != nil {
		<-r.release
	}
	return 1
}

func (r *recordingAssistant) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestConsumerService_IngestsPublishedFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	assistant := &recordingAssistant{}
	consumer := NewConsumerService(pubSub, "ingest", assistant, newAssistantFixture().log, 1)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("ingest", pubSub)
	planId := uuid.New()
	msg := dto.IngestFileMessage{FileId: uuid.New(), Path: "/tmp/a.txt", ContentType: "text/plain", LessonPlanId: &planId}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(ctx, []byte("not json")))
	require.NoError(t, publisher.Publish(ctx, payload))

	assert.Eventually(t, func() bool { return assistant.count() == 1 }, time.Second, 10*time.Millisecond)

	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	assert.Equal(t, msg.FileId, assistant.calls[0].fileId)
	assert.Equal(t, "/tmp/a.txt", assistant.calls[0].path)
	assert.Equal(t, planId, *assistant.calls[0].scopeId)
}

func TestConsumerService_IngestsConcurrently(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		files       int
		inFlight    int
	}{
		{name: "bounded by limit", concurrency: 2, files: 3, inFlight: 2},
		{name: "default limit", concurrency: 0, files: 4, inFlight: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
			defer pubSub.Close()

			assistant := &recordingAssistant{release: make(chan struct{})}
			consumer := NewConsumerService(pubSub, "ingest", assistant, newAssistantFixture().log, tt.concurrency)
			require.NoError(t, consumer.Consume(ctx))

			publisher := NewPublisherService("ingest", pubSub)
			for i := 0; i < tt.files; i++ {
				payload, err := json.Marshal(dto.IngestFileMessage{FileId: uuid.New(), Path: "/tmp/f.txt", ContentType: "text/plain"})
				require.NoError(t, err)
				require.NoError(t, publisher.Publish(ctx, payload))
			}

			// Ingest blocks until released, so every started call is in flight.
			assert.Eventually(t, func() bool { return assistant.count() == tt.inFlight }, time.Second, 10*time.Millisecond)
			assert.Never(t, func() bool { return assistant.count() > tt.inFlight }, 100*time.Millisecond, 10*time.Millisecond)

			close(assistant.release)
			assert.Eventually(t, func() bool { return assistant.count() == tt.files }, time.Second, 10*time.Millisecond)
		})
	}
}
