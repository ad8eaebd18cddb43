package workflow

import (
	"fmt"
	"strings"

	"lessoncraft-be/internal/entity"
)

func writeContext(prompt *strings.Builder, context []string) {
	prompt.WriteString("Context from uploaded documents:\n")
	prompt.WriteString(strings.Join(context, "\n"))
	prompt.WriteString("\n\n")
}

func buildOutlinePrompt(plan entity.LessonPlan, context []string) string {
	var prompt strings.Builder

	prompt.WriteString("Create a high-level outline for a lesson plan with the following details:\n\n")
	fmt.Fprintf(&prompt, "Title: %s\n", plan.Title)
	fmt.Fprintf(&prompt, "Subject: %s\n", plan.Subject)
	fmt.Fprintf(&prompt, "Age Group: %s\n", plan.AgeGroup)
	fmt.Fprintf(&prompt, "Description: %s\n\n", plan.Description)
	writeContext(&prompt, context)
	prompt.WriteString("Please provide a structured outline with 5-8 main sections that would make an effective lesson plan.\n")
	prompt.WriteString("Return only the outline points as a list, one per line, without numbering.\n")

	return prompt.String()
}

func buildDetailPrompt(plan entity.LessonPlan, section string, context []string) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Create detailed content for the %q section of a lesson plan with these details:\n\n", section)
	fmt.Fprintf(&prompt, "Title: %s\n", plan.Title)
	fmt.Fprintf(&prompt, "Subject: %s\n", plan.Subject)
	fmt.Fprintf(&prompt, "Age Group: %s\n\n", plan.AgeGroup)
	writeContext(&prompt, context)
	prompt.WriteString("Provide comprehensive, practical content for this section that a teacher can directly use.\n")
	prompt.WriteString("Include specific activities, timing, and resources where appropriate.\n")

	return prompt.String()
}

func buildChatPrompt(plan entity.LessonPlan, message string, context []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an AI assistant helping teachers create lesson plans.\n\n")
	prompt.WriteString("Current lesson plan context:\n")
	fmt.Fprintf(&prompt, "Title: %s\n", plan.Title)
	fmt.Fprintf(&prompt, "Subject: %s\n", plan.Subject)
	fmt.Fprintf(&prompt, "Age Group: %s\n", plan.AgeGroup)
	fmt.Fprintf(&prompt, "Status: %s\n\n", plan.Status)
	writeContext(&prompt, context)
	fmt.Fprintf(&prompt, "Teacher's message: %s\n\n", message)
	prompt.WriteString("Provide a helpful, professional response that assists with lesson plan creation.\n")
	prompt.WriteString("Be specific and practical in your suggestions.\n")

	return prompt.String()
}
