package workflow

import (
	"context"
	"fmt"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/pkg/llm"
)

const logModule = "workflow"

const (
	DetailsResponse   = "I've generated detailed content for each section of your lesson plan! You can now review and modify any section as needed. The lesson plan is ready for use in your classroom."
	NoOutlineResponse = "I need to create an outline first before generating detailed content. Would you like me to create an outline for your lesson plan?"
	NoModelResponse   = "I'd be happy to help you with your lesson plan! Please configure your AI API keys in your profile to enable full AI assistance."
	ChatErrorResponse = "I'm sorry, I encountered an error while processing your request. Please try again."
)

const DefaultDetailConcurrency = 4

type node func(ctx context.Context, state *State)

// Workflow runs route -> one generation node -> done. It holds no per-call
// state, so one instance can serve concurrent calls.
type Workflow struct {
	model             llm.LLMProvider
	logger            logger.ILogger
	detailConcurrency int
	nodes             map[Route]node
}

type Option func(*Workflow)

// WithDetailConcurrency bounds parallel section generation. Values below 1 are ignored.
func WithDetailConcurrency(n int) Option {
	return func(w *Workflow) {
		if n > 0 {
			w.detailConcurrency = n
		}
	}
}

// New builds a workflow. model may be nil, in which case every node uses its
// deterministic fallback.
func New(model llm.LLMProvider, log logger.ILogger, opts ...Option) *Workflow {
	w := &Workflow{
		model:             model,
		logger:            log,
		detailConcurrency: DefaultDetailConcurrency,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.nodes = map[Route]node{
		RouteGenerateOutline: w.generateOutline,
		RouteGenerateDetails: w.generateDetails,
		RouteGeneralChat:     w.generalChat,
	}
	return w
}

// Run never returns an error: node failures are reported as response text
// with Mutated left false.
func (w *Workflow) Run(ctx context.Context, plan entity.LessonPlan, contextChunks []string, message string) (result *Result) {
	state := &State{
		LessonPlan:  plan,
		Context:     contextChunks,
		UserMessage: message,
	}
	state.Route = RouteMessage(plan.Status, message)

	defer func() {
		if r := recover(); r != nil {
			w.logger.Error(logModule, "Workflow node panicked", map[string]interface{}{
				"lesson_plan_id": plan.Id.String(),
				"route":          string(state.Route),
				"panic":          fmt.Sprint(r),
			})
			result = &Result{Response: ChatErrorResponse, Route: state.Route}
		}
	}()

	w.logger.Debug(logModule, "Routed message", map[string]interface{}{
		"lesson_plan_id": plan.Id.String(),
		"status":         string(plan.Status),
		"route":          string(state.Route),
		"context_chunks": len(contextChunks),
	})

	w.nodes[state.Route](ctx, state)
	return state.result()
}
