package workflow

import (
	"context"
)

func (w *Workflow) generalChat(ctx context.Context, state *State) {
	if w.model == nil {
		state.Response = NoModelResponse
		return
	}

	text, err := w.model.Generate(ctx, buildChatPrompt(state.LessonPlan, state.UserMessage, state.Context))
	if err != nil {
		w.logger.Error(logModule, "Chat generation failed", map[string]interface{}{
			"lesson_plan_id": state.LessonPlan.Id.String(),
			"error":          err.Error(),
		})
		state.Response = ChatErrorResponse
		return
	}
	state.Response = text
}
