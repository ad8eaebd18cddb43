package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	mu      sync.Mutex
	prompts []string
	fn      func(prompt string) (string, error)
}

func (s *stubModel) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *stubModel) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.fn(prompt)
}

func newPlan(status entity.LessonPlanStatus) entity.LessonPlan {
	return entity.LessonPlan{
		Id:          uuid.New(),
		Title:       "Intro to Fractions",
		Subject:     "Mathematics",
		AgeGroup:    "8-10",
		Description: "Halves and quarters",
		Status:      status,
	}
}

func TestRouteMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.LessonPlanStatus
		message string
		want    Route
	}{
		{name: "draft outline request", status: entity.LessonPlanStatusDraft, message: "please create an outline for this", want: RouteGenerateOutline},
		{name: "draft upper case", status: entity.LessonPlanStatusDraft, message: "LET'S START", want: RouteGenerateOutline},
		{name: "draft details words win outline", status: entity.LessonPlanStatusDraft, message: "generate detailed content", want: RouteGenerateOutline},
		{name: "draft no keyword", status: entity.LessonPlanStatusDraft, message: "hello there", want: RouteGeneralChat},
		{name: "outline details request", status: entity.LessonPlanStatusOutline, message: "add more details", want: RouteGenerateDetails},
		{name: "outline elaborate", status: entity.LessonPlanStatusOutline, message: "Please Elaborate", want: RouteGenerateDetails},
		{name: "outline create is chat", status: entity.LessonPlanStatusOutline, message: "create an outline", want: RouteGeneralChat},
		{name: "detailed always chat", status: entity.LessonPlanStatusDetailed, message: "create an outline with more details", want: RouteGeneralChat},
		{name: "completed always chat", status: entity.LessonPlanStatusCompleted, message: "expand the content", want: RouteGeneralChat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RouteMessage(tt.status, tt.message))
		})
	}
}

func TestParseOutline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered and bulleted",
			text: "Here is the outline:\n1. Objectives\n2) Warm-up\n- Main Activity\n• Practice\n* **Assessment**\n",
			want: []string{"Objectives", "Warm-up", "Main Activity", "Practice", "Assessment"},
		},
		{
			name: "plain lines fallback",
			text: "Objectives\n\n  Warm-up  \nWrap-up",
			want: []string{"Objectives", "Warm-up", "Wrap-up"},
		},
		{
			name: "truncated to eight",
			text: "- a\n- b\n- c\n- d\n- e\n- f\n- g\n- h\n- i\n- j",
			want: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		},
		{
			name: "bare markers dropped",
			text: "-\n1.\n- Real",
			want: []string{"Real"},
		},
		{
			name: "bold lines without markers",
			text: "**Introduction**\n**Main Activity**",
			want: []string{"Introduction", "Main Activity"},
		},
		{
			name: "bold label inside numbered item",
			text: "1. **Hook**: grab attention\n2. *Explore*",
			want: []string{"Hook: grab attention", "Explore"},
		},
		{name: "empty", text: "  \n\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutline(tt.text))
		})
	}
}

func TestGenerateOutline_NoModelUsesDefault(t *testing.T) {
	w := New(nil, logger.NewNopLogger())

	res := w.Run(context.Background(), newPlan(entity.LessonPlanStatusDraft), nil, "create an outline")

	assert.Equal(t, RouteGenerateOutline, res.Route)
	assert.True(t, res.Mutated)
	require.NotNil(t, res.NewStatus)
	assert.Equal(t, entity.LessonPlanStatusOutline, *res.NewStatus)
	assert.Equal(t, DefaultOutline(), res.Outline)
	assert.Len(t, res.Outline, 8)
	assert.True(t, strings.HasPrefix(res.Response, "I've created a comprehensive outline for your lesson plan:\n\n1. Learning Objectives\n"))
	assert.True(t, strings.HasSuffix(res.Response, "8. Extension Activities\n\nWould you like me to generate detailed content for each section?"))
}

func TestGenerateOutline_WithModel(t *testing.T) {
	model := &stubModel{fn: func(string) (string, error) {
		return "1. Hook\n2. Model fractions\n3. Group work\n4. Exit ticket\n5. Homework\n6. a\n7. b\n8. c\n9. d", nil
	}}
	w := New(model, logger.NewNopLogger())

	res := w.Run(context.Background(), newPlan(entity.LessonPlanStatusDraft), []string{"chunk one", "chunk two"}, "generate")

	assert.True(t, res.Mutated)
	assert.Len(t, res.Outline, MaxOutlineSections)
	assert.Equal(t, "Hook", res.Outline[0])

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Title: Intro to Fractions")
	assert.Contains(t, model.prompts[0], "Context from uploaded documents:\nchunk one\nchunk two")
}

func TestGenerateOutline_ModelFailureDoesNotMutate(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) (string, error)
	}{
		{name: "error", fn: func(string) (string, error) { return "", errors.New("timeout") }},
		{name: "empty text", fn: func(string) (string, error) { return "\n\n", nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(&stubModel{fn: tt.fn}, logger.NewNopLogger())

			res := w.Run(context.Background(), newPlan(entity.LessonPlanStatusDraft), nil, "create outline")

			assert.False(t, res.Mutated)
			assert.Nil(t, res.NewStatus)
			assert.Nil(t, res.Outline)
			assert.Equal(t, ChatErrorResponse, res.Response)
		})
	}
}

func TestGenerateDetails_NoOutlineGuard(t *testing.T) {
	model := &stubModel{fn: func(string) (string, error) { return "x", nil }}
	w := New(model, logger.NewNopLogger())

	res := w.Run(context.Background(), newPlan(entity.LessonPlanStatusOutline), nil, "add more details")

	assert.Equal(t, RouteGenerateDetails, res.Route)
	assert.False(t, res.Mutated)
	assert.Nil(t, res.NewStatus)
	assert.Nil(t, res.Details)
	assert.Equal(t, NoOutlineResponse, res.Response)
	assert.Empty(t, model.prompts)
}

func TestGenerateDetails_NoModelPlaceholders(t *testing.T) {
	plan := newPlan(entity.LessonPlanStatusOutline)
	plan.Outline = []string{"Warm-up", "Practice", "Warm-up"}
	w := New(nil, logger.NewNopLogger())

	res := w.Run(context.Background(), plan, nil, "expand")

	assert.True(t, res.Mutated)
	require.NotNil(t, res.NewStatus)
	assert.Equal(t, entity.LessonPlanStatusDetailed, *res.NewStatus)
	assert.Equal(t, []entity.SectionDetail{
		{Section: "Warm-up", Content: "Detailed content for Warm-up would be generated here using the configured AI model."},
		{Section: "Practice", Content: "Detailed content for Practice would be generated here using the configured AI model."},
	}, res.Details)
	assert.Equal(t, DetailsResponse, res.Response)
}

func TestGenerateDetails_IsolatesSectionFailures(t *testing.T) {
	plan := newPlan(entity.LessonPlanStatusOutline)
	plan.Outline = []string{"One", "Two", "Three"}
	model := &stubModel{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, `"Two"`) {
			return "", errors.New("rate limited")
		}
		return "content", nil
	}}
	w := New(model, logger.NewNopLogger())

	res := w.Run(context.Background(), plan, nil, "details please")

	assert.True(t, res.Mutated)
	require.Len(t, res.Details, 3)
	assert.Equal(t, "content", res.Details[0].Content)
	assert.Equal(t, "Error generating content for Two. Please try again.", res.Details[1].Content)
	assert.Equal(t, "content", res.Details[2].Content)
}

func TestGenerateDetails_AllSectionsFail(t *testing.T) {
	plan := newPlan(entity.LessonPlanStatusOutline)
	plan.Outline = []string{"One", "Two"}
	w := New(&stubModel{fn: func(string) (string, error) { return "", errors.New("down") }}, logger.NewNopLogger())

	res := w.Run(context.Background(), plan, nil, "details")

	assert.False(t, res.Mutated)
	assert.Equal(t, ChatErrorResponse, res.Response)
}

func TestGenerateDetails_KeepsOutlineOrderUnderConcurrency(t *testing.T) {
	plan := newPlan(entity.LessonPlanStatusOutline)
	plan.Outline = []string{"A", "B", "C", "D", "E", "F"}

	var inFlight, peak int32
	model := &stubModel{fn: func(prompt string) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		start := strings.Index(prompt, `"`) + 1
		end := strings.Index(prompt[start:], `"`) + start
		return "content for " + prompt[start:end], nil
	}}
	w := New(model, logger.NewNopLogger(), WithDetailConcurrency(2))

	res := w.Run(context.Background(), plan, nil, "expand")

	require.Len(t, res.Details, 6)
	for i, section := range plan.Outline {
		assert.Equal(t, section, res.Details[i].Section)
		assert.Equal(t, "content for "+section, res.Details[i].Content)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestGeneralChat(t *testing.T) {
	t.Run("no model", func(t *testing.T) {
		res := New(nil, logger.NewNopLogger()).Run(context.Background(), newPlan(entity.LessonPlanStatusDetailed), nil, "hi")

		assert.Equal(t, RouteGeneralChat, res.Route)
		assert.False(t, res.Mutated)
		assert.Equal(t, NoModelResponse, res.Response)
	})

	t.Run("model reply verbatim", func(t *testing.T) {
		model := &stubModel{fn: func(string) (string, error) { return "  Use manipulatives.  ", nil }}
		plan := newPlan(entity.LessonPlanStatusDetailed)

		res := New(model, logger.NewNopLogger()).Run(context.Background(), plan, []string{"ctx"}, "Any tips?")

		assert.Equal(t, "  Use manipulatives.  ", res.Response)
		assert.False(t, res.Mutated)
		require.Len(t, model.prompts, 1)
		assert.Contains(t, model.prompts[0], "Status: detailed")
		assert.Contains(t, model.prompts[0], "Teacher's message: Any tips?")
	})

	t.Run("model error", func(t *testing.T) {
		model := &stubModel{fn: func(string) (string, error) { return "", errors.New("boom") }}

		res := New(model, logger.NewNopLogger()).Run(context.Background(), newPlan(entity.LessonPlanStatusCompleted), nil, "hi")

		assert.Equal(t, ChatErrorResponse, res.Response)
		assert.False(t, res.Mutated)
	})
}

func TestRun_RecoversFromPanickingModel(t *testing.T) {
	model := &stubModel{fn: func(string) (string, error) { panic("bad provider") }}

	res := New(model, logger.NewNopLogger()).Run(context.Background(), newPlan(entity.LessonPlanStatusDraft), nil, "hello")

	assert.Equal(t, ChatErrorResponse, res.Response)
	assert.False(t, res.Mutated)
}

func TestGenerateDetails_RecoversPerSectionPanics(t *testing.T) {
	tests := []struct {
		name        string
		fn          func(prompt string) (string, error)
		wantMutated bool
	}{
		{
			name: "every section panics",
			fn:   func(string) (string, error) { panic("bad provider") },
		},
		{
			name: "one section panics",
			fn: func(prompt string) (string, error) {
				if strings.Contains(prompt, `"A"`) {
					panic("bad provider")
				}
				return "content", nil
			},
			wantMutated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := newPlan(entity.LessonPlanStatusOutline)
			plan.Outline = []string{"A", "B"}
			w := New(&stubModel{fn: tt.fn}, logger.NewNopLogger())

			res := w.Run(context.Background(), plan, nil, "add details")

			assert.Equal(t, RouteGenerateDetails, res.Route)
			assert.Equal(t, tt.wantMutated, res.Mutated)
			if !tt.wantMutated {
				assert.Equal(t, ChatErrorResponse, res.Response)
				return
			}
			require.Len(t, res.Details, 2)
			assert.Equal(t, "Error generating content for A. Please try again.", res.Details[0].Content)
			assert.Equal(t, "content", res.Details[1].Content)
		})
	}
}
