package implementation

import (
	"context"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/mapper"
	"device-assistant-ai/internal/model"
	"device-assistant-ai/internal/repository/contract"
	"device-assistant-ai/internal/repository/specification"

	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var models []*model.RequestResponsePair
	query := specification.Apply(r.db.WithContext(ctx).Model(&model.RequestResponsePair{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationRepositoryImpl) FetchRecent(ctx context.Context, conversationId string, limit int) ([]*entity.ConversationTurn, error) {
	if limit <= 0 {
		return []*entity.ConversationTurn{}, nil
	}
	return r.FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.NewestFirst{},
		specification.Pagination{Limit: limit},
	)
}
