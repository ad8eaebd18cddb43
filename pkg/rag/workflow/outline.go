package workflow

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"lessoncraft-be/internal/entity"
)

const MaxOutlineSections = 8

// DefaultOutline is used when no language model is configured.
func DefaultOutline() []string {
	return []string{
		"Learning Objectives",
		"Materials and Resources",
		"Introduction and Warm-up",
		"Main Teaching Activity",
		"Practice and Application",
		"Assessment and Evaluation",
		"Conclusion and Wrap-up",
		"Extension Activities",
	}
}

// ParseOutline keeps lines that start with a digit, a dash or a bullet and
// strips those markers along with bold emphasis. When the model ignored list
// markers entirely every non-empty line is used instead. At most MaxOutlineSections are returned.
func ParseOutline(text string) []string {
	var marked, plain []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "**", ""))
		if line == "" {
			continue
		}
		if item, ok := stripListMarker(line); ok {
			if item != "" {
				marked = append(marked, item)
			}
			continue
		}
		plain = append(plain, line)
	}

	out := marked
	if len(out) == 0 {
		out = plain
	}
	if len(out) > MaxOutlineSections {
		out = out[:MaxOutlineSections]
	}
	return out
}

func stripListMarker(line string) (string, bool) {
	first, _ := utf8.DecodeRuneInString(line)
	switch {
	case unicode.IsDigit(first):
		rest := strings.TrimLeftFunc(line, unicode.IsDigit)
		rest = strings.TrimLeft(rest, ".):")
		return cleanItem(rest), true
	case first == '-' || first == '*' || first == '•' || first == '–':
		return cleanItem(line[utf8.RuneLen(first):]), true
	}
	return "", false
}

func cleanItem(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}

func formatOutlineResponse(outline []string) string {
	var b strings.Builder
	b.WriteString("I've created a comprehensive outline for your lesson plan:\n\n")
	for i, item := range outline {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\nWould you like me to generate detailed content for each section?")
	return b.String()
}

func (w *Workflow) generateOutline(ctx context.Context, state *State) {
	var outline []string

	if w.model == nil {
		outline = DefaultOutline()
	} else {
		text, err := w.model.Generate(ctx, buildOutlinePrompt(state.LessonPlan, state.Context))
		if err != nil {
			w.logger.Error(logModule, "Outline generation failed", map[string]interface{}{
				"lesson_plan_id": state.LessonPlan.Id.String(),
				"error":          err.Error(),
			})
			state.Response = ChatErrorResponse
			return
		}
		outline = ParseOutline(text)
		if len(outline) == 0 {
			w.logger.Warn(logModule, "Model returned an empty outline", map[string]interface{}{
				"lesson_plan_id": state.LessonPlan.Id.String(),
			})
			state.Response = ChatErrorResponse
			return
		}
	}

	state.Outline = outline
	state.advance(entity.LessonPlanStatusOutline)
	state.Response = formatOutlineResponse(outline)
}
