package workflow

import (
	"context"
	"fmt"

	"lessoncraft-be/internal/entity"

	"golang.org/x/sync/errgroup"
)

func detailPlaceholder(section string) string {
	return fmt.Sprintf("Detailed content for %s would be generated here using the configured AI model.", section)
}

func detailError(section string) string {
	return fmt.Sprintf("Error generating content for %s. Please try again.", section)
}

// uniqueSections drops repeated titles so details stay keyed by section.
func uniqueSections(outline []string) []string {
	seen := make(map[string]struct{}, len(outline))
	out := make([]string, 0, len(outline))
	for _, s := range outline {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (w *Workflow) generateDetails(ctx context.Context, state *State) {
	if len(state.LessonPlan.Outline) == 0 {
		state.Response = NoOutlineResponse
		return
	}

	sections := uniqueSections(state.LessonPlan.Outline)
	details := make([]entity.SectionDetail, len(sections))
	failed := make([]bool, len(sections))

	// Each goroutine owns one index, and failures never cancel siblings.
	var g errgroup.Group
	g.SetLimit(w.detailConcurrency)
	for i, section := range sections {
		g.Go(func() error {
			details[i] = entity.SectionDetail{Section: section}
			// Run's recover cannot see panics raised on this goroutine.
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error(logModule, "Section generation panicked", map[string]interface{}{
						"lesson_plan_id": state.LessonPlan.Id.String(),
						"section":        section,
						"panic":          fmt.Sprint(r),
					})
					details[i].Content = detailError(section)
					failed[i] = true
				}
			}()
			if w.model == nil {
				details[i].Content = detailPlaceholder(section)
				return nil
			}

			content, err := w.model.Generate(ctx, buildDetailPrompt(state.LessonPlan, section, state.Context))
			if err != nil {
				w.logger.Error(logModule, "Section generation failed", map[string]interface{}{
					"lesson_plan_id": state.LessonPlan.Id.String(),
					"section":        section,
					"error":          err.Error(),
				})
				details[i].Content = detailError(section)
				failed[i] = true
				return nil
			}
			details[i].Content = content
			return nil
		})
	}
	_ = g.Wait()

	if w.model != nil && allTrue(failed) {
		state.Response = ChatErrorResponse
		return
	}

	state.Details = details
	state.advance(entity.LessonPlanStatusDetailed)
	state.Response = DetailsResponse
}

func allTrue(flags []bool) bool {
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return len(flags) > 0
}
