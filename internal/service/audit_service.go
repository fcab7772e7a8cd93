package service

import (
	"context"
	"encoding/json"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const AuditTopic = "rag.audit"

// IAuditPublisher records served queries. Recording never fails the request.
type IAuditPublisher interface {
	Record(ctx context.Context, event events.QueryServed)
}

type auditPublisher struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewAuditPublisher(publisher message.Publisher, topic string, log logger.ILogger) IAuditPublisher {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &auditPublisher{publisher: publisher, topic: topic, logger: log}
}

func (p *auditPublisher) Record(ctx context.Context, event events.QueryServed) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("AUDIT", "failed to marshal audit event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(context.WithoutCancel(ctx))
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Warn("AUDIT", "failed to publish audit event", map[string]interface{}{
			"request_id": event.RequestId,
			"error":      err.Error(),
		})
	}
}

type nopAuditPublisher struct{}

func NewNopAuditPublisher() IAuditPublisher { return nopAuditPublisher{} }

func (nopAuditPublisher) Record(context.Context, events.QueryServed) {}
