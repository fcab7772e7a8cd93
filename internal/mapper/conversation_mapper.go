package mapper

import (
	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(p *model.RequestResponsePair) *entity.ConversationTurn {
	if p == nil {
		return nil
	}
	turn := &entity.ConversationTurn{
		Request:  p.Request,
		Response: p.Response,
	}
	if p.CreatedTime != nil {
		turn.CreatedTime = *p.CreatedTime
	}
	return turn
}

func (m *ConversationMapper) ToEntities(pairs []*model.RequestResponsePair) []*entity.ConversationTurn {
	out := make([]*entity.ConversationTurn, 0, len(pairs))
	for _, p := range pairs {
		if t := m.ToEntity(p); t != nil {
			out = append(out, t)
		}
	}
	return out
}
