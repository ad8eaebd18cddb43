package workflow

import (
	"lessoncraft-be/internal/entity"
)

type Route string

const (
	RouteGenerateOutline Route = "generate_outline"
	RouteGenerateDetails Route = "generate_details"
	RouteGeneralChat     Route = "general_chat"
)

// State is built fresh for every Run and discarded afterwards.
type State struct {
	LessonPlan  entity.LessonPlan
	Context     []string
	UserMessage string
	Route       Route

	Outline   []string
	Details   []entity.SectionDetail
	Response  string
	Mutated   bool
	NewStatus *entity.LessonPlanStatus
}

// Result is what a caller gets back from Run. Outline and Details are only
// set when Mutated is true.
type Result struct {
	Response  string
	Route     Route
	Mutated   bool
	NewStatus *entity.LessonPlanStatus
	Outline   []string
	Details   []entity.SectionDetail
}

func (s *State) advance(status entity.LessonPlanStatus) {
	s.Mutated = true
	s.NewStatus = &status
}

func (s *State) result() *Result {
	return &Result{
		Response:  s.Response,
		Route:     s.Route,
		Mutated:   s.Mutated,
		NewStatus: s.NewStatus,
		Outline:   s.Outline,
		Details:   s.Details,
	}
}
