package service

import (
	"context"

	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/pkg/events"
	natsbus "lessoncraft-be/pkg/nats"
)

const auditModule = "event_audit"

// EventSubscriber is satisfied by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler natsbus.EventHandler) error
}

type IEventAuditService interface {
	Start(ctx context.Context) error
}

type eventAuditService struct {
	subscriber EventSubscriber
	auditLog   logger.ILogger
}

// NewEventAuditService writes every domain event to auditLog, which is
// expected to be an isolated file logger.
func NewEventAuditService(subscriber EventSubscriber, auditLog logger.ILogger) IEventAuditService {
	return &eventAuditService{
		subscriber: subscriber,
		auditLog:   auditLog,
	}
}

func (s *eventAuditService) Start(ctx context.Context) error {
	for _, eventType := range []string{events.LessonPlanStatusChanged, events.FileProcessed} {
		if err := s.subscriber.Subscribe(ctx, natsbus.Subject(eventType), "audit_"+eventType, s.Record); err != nil {
			return err
		}
	}
	return nil
}

// Record writes one event. It never fails, so events are always acked.
func (s *eventAuditService) Record(ctx context.Context, event events.Event) error {
	details := make(map[string]interface{}, len(event.Payload())+1)
	for k, v := range event.Payload() {
		details[k] = v
	}
	details["occurred_at"] = event.Timestamp()
	s.auditLog.Info(auditModule, event.EventType(), details)
	return nil
}
