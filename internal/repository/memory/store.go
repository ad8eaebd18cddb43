package memory

import (
	"sync"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
)

// Store is a process-local document store used when STORE_DRIVER=memory and
// in service tests. Repositories share one Store so cascades see each other.
type Store struct {
	mu sync.RWMutex

	lessonPlans map[uuid.UUID]entity.LessonPlan
	chunks      []entity.DocumentChunk
	messages    []entity.Message
	files       map[uuid.UUID]entity.File
	users       map[uuid.UUID]entity.User
}

func NewStore() *Store {
	return &Store{
		lessonPlans: make(map[uuid.UUID]entity.LessonPlan),
		files:       make(map[uuid.UUID]entity.File),
		users:       make(map[uuid.UUID]entity.User),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
