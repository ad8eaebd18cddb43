package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageSender string

const (
	MessageSenderUser MessageSender = "user"
	MessageSenderAI   MessageSender = "ai"
)

type Message struct {
	Id           uuid.UUID
	LessonPlanId uuid.UUID
	Content      string
	Sender       MessageSender
	Attachments  []string
	Timestamp    time.Time
}
