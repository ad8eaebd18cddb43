package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByLessonPlanID struct {
	LessonPlanID uuid.UUID
}

func (s ByLessonPlanID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lesson_plan_id = ?", s.LessonPlanID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// SubjectContains matches subject case-insensitively. LIKE wildcards in the
// input are escaped so they match literally.
type SubjectContains struct {
	Subject string
}

func (s SubjectContains) Apply(db *gorm.DB) *gorm.DB {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s.Subject)
	return db.Where("subject ILIKE ?", "%"+escaped+"%")
}
