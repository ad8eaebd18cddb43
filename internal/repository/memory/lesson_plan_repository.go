package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/repository/contract"

	"github.com/google/uuid"
)

type LessonPlanRepository struct {
	store *Store
}

func NewLessonPlanRepository(store *Store) contract.LessonPlanRepository {
	return &LessonPlanRepository{store: store}
}

func copyLessonPlan(lp entity.LessonPlan) entity.LessonPlan {
	lp.Outline = cloneStrings(lp.Outline)
	if lp.Details != nil {
		lp.Details = append([]entity.SectionDetail(nil), lp.Details...)
	}
	return lp
}

func (r *LessonPlanRepository) Create(ctx context.Context, plan *entity.LessonPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	r.store.lessonPlans[plan.Id] = copyLessonPlan(*plan)
	return nil
}

func (r *LessonPlanRepository) Update(ctx context.Context, plan *entity.LessonPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	plan.UpdatedAt = time.Now()
	r.store.lessonPlans[plan.Id] = copyLessonPlan(*plan)
	return nil
}

func (r *LessonPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.lessonPlans, id)
	return nil
}

func (r *LessonPlanRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.LessonPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lp, ok := r.store.lessonPlans[id]
	if !ok {
		return nil, nil
	}
	out := copyLessonPlan(lp)
	return &out, nil
}

func (r *LessonPlanRepository) FindByUser(ctx context.Context, userId uuid.UUID, filter contract.LessonPlanFilter) ([]*entity.LessonPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	subject := strings.ToLower(filter.Subject)
	var out []*entity.LessonPlan
	for _, lp := range r.store.lessonPlans {
		if lp.UserId != userId {
			continue
		}
		if filter.Status != nil && lp.Status != *filter.Status {
			continue
		}
		if subject != "" && !strings.Contains(strings.ToLower(lp.Subject), subject) {
			continue
		}
		cp := copyLessonPlan(lp)
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *entity.LessonPlan) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if filter.Skip >= len(out) {
		return []*entity.LessonPlan{}, nil
	}
	out = out[filter.Skip:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
