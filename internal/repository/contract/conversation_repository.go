package contract

import (
	"context"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/specification"
)

type ConversationRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	// FetchRecent returns up to limit turns, newest first.
	FetchRecent(ctx context.Context, conversationId string, limit int) ([]*entity.ConversationTurn, error)
}
