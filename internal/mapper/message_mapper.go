package mapper

import (
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:           msg.Id,
		LessonPlanId: msg.LessonPlanId,
		Content:      msg.Content,
		Sender:       entity.MessageSender(msg.Sender),
		Attachments:  []string(msg.Attachments),
		Timestamp:    msg.Timestamp,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:           msg.Id,
		LessonPlanId: msg.LessonPlanId,
		Content:      msg.Content,
		Sender:       string(msg.Sender),
		Attachments:  datatypes.JSONSlice[string](msg.Attachments),
		Timestamp:    msg.Timestamp,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
