package service

import (
	"context"
	"sync"
	"testing"

	"lessoncraft-be/pkg/events"
	natsbus "lessoncraft-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditEntry struct {
	module  string
	message string
	details map[string]interface{}
}

type memoryLog struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *memoryLog) record(module, message string, details map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{module: module, message: message, details: details})
}

func (m *memoryLog) Debug(module, message string, details map[string]interface{}) {
	m.record(module, message, details)
}
func (m *memoryLog) Info(module, message string, details map[string]interface{}) {
	m.record(module, message, details)
}
func (m *memoryLog) Warn(module, message string, details map[string]interface{}) {
	m.record(module, message, details)
}
func (m *memoryLog) Error(module, message string, details map[string]interface{}) {
	m.record(module, message, details)
}
func (m *memoryLog) Sync() error { return nil }

type fakeSubscriber struct {
	subjects []string
	durables []string
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, subject string, durableName string, handler natsbus.EventHandler) error {
	f.subjects = append(f.subjects, subject)
	f.durables = append(f.durables, durableName)
	return nil
}

func TestEventAuditService_StartSubscribesToDomainEvents(t *testing.T) {
	sub := &fakeSubscriber{}
	svc := NewEventAuditService(sub, &memoryLog{})

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, []string{
		natsbus.Subject(events.LessonPlanStatusChanged),
		natsbus.Subject(events.FileProcessed),
	}, sub.subjects)
	assert.Equal(t, []string{"audit_LESSON_PLAN_STATUS_CHANGED", "audit_FILE_PROCESSED"}, sub.durables)
}

func TestEventAuditService_Record(t *testing.T) {
	log := &memoryLog{}
	svc := &eventAuditService{auditLog: log}
	planId := uuid.New()

	event := events.NewLessonPlanStatusChanged(planId, uuid.New(), "draft", "outline")
	require.NoError(t, svc.Record(context.Background(), event))

	require.Len(t, log.entries, 1)
	entry := log.entries[0]
	assert.Equal(t, auditModule, entry.module)
	assert.Equal(t, events.LessonPlanStatusChanged, entry.message)
	assert.Equal(t, "outline", entry.details["new_status"])
	assert.Contains(t, entry.details, "occurred_at")
}
