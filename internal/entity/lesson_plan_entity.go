package entity

import (
	"time"

	"github.com/google/uuid"
)

type LessonPlanStatus string

const (
	LessonPlanStatusDraft     LessonPlanStatus = "draft"
	LessonPlanStatusOutline   LessonPlanStatus = "outline"
	LessonPlanStatusDetailed  LessonPlanStatus = "detailed"
	LessonPlanStatusCompleted LessonPlanStatus = "completed"
)

func (s LessonPlanStatus) Valid() bool {
	switch s {
	case LessonPlanStatusDraft, LessonPlanStatusOutline, LessonPlanStatusDetailed, LessonPlanStatusCompleted:
		return true
	}
	return false
}

// SectionDetail is the generated content for one outline section.
// Details are kept as a slice so outline order survives persistence.
type SectionDetail struct {
	Section string `json:"section"`
	Content string `json:"content"`
}

type LessonPlan struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Subject     string
	AgeGroup    string
	Description string
	Status      LessonPlanStatus
	Outline     []string
	Details     []SectionDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DetailFor returns the content for section, if present.
func (lp *LessonPlan) DetailFor(section string) (string, bool) {
	for _, d := range lp.Details {
		if d.Section == section {
			return d.Content, true
		}
	}
	return "", false
}
