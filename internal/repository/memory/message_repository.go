package memory

import (
	"context"
	"slices"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/repository/contract"

	"github.com/google/uuid"
)

type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	cp := *message
	cp.Attachments = cloneStrings(message.Attachments)
	r.store.messages = append(r.store.messages, cp)
	return nil
}

func (r *MessageRepository) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Message
	for _, m := range r.store.messages {
		if m.LessonPlanId != lessonPlanId {
			continue
		}
		cp := m
		cp.Attachments = cloneStrings(m.Attachments)
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *entity.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out, nil
}

func (r *MessageRepository) DeleteByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.messages[:0]
	var deleted int64
	for _, m := range r.store.messages {
		if m.LessonPlanId == lessonPlanId {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.store.messages = kept
	return deleted, nil
}
