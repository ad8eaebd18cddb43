package workflow

import (
	"strings"

	"lessoncraft-be/internal/entity"
)

var (
	outlineKeywords = []string{"outline", "structure", "plan", "create", "generate", "start"}
	detailsKeywords = []string{"details", "detailed", "content", "expand", "elaborate"}
)

// RouteMessage picks the node for a message. Matching is a case-insensitive
// substring test, and outline intent is checked before details intent.
func RouteMessage(status entity.LessonPlanStatus, message string) Route {
	lower := strings.ToLower(message)

	if status == entity.LessonPlanStatusDraft && containsAny(lower, outlineKeywords) {
		return RouteGenerateOutline
	}
	if status == entity.LessonPlanStatusOutline && containsAny(lower, detailsKeywords) {
		return RouteGenerateDetails
	}
	return RouteGeneralChat
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
