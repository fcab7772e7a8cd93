package service

import (
	"context"
	"encoding/json"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink is where consumed audit events end up. pkg/nats.Publisher
// forwards them to JetStream.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sink       EventSink
	logger     logger.ILogger
}

// NewConsumerService accepts a nil sink; events are then only logged.
func NewConsumerService(subscriber message.Subscriber, topicName string, sink EventSink, log logger.ILogger) IConsumerService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sink:       sink,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.QueryServed
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("AUDIT", "failed to unmarshal audit event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // malformed, retrying cannot help
		return
	}

	cs.logger.Info("AUDIT", "query served", event.Payload())

	if cs.sink == nil {
		msg.Ack()
		return
	}

	if err := cs.sink.Publish(ctx, event); err != nil {
		// the audit trail is best effort; a down broker must not pile up redeliveries
		cs.logger.Warn("AUDIT", "failed to forward audit event", map[string]interface{}{
			"request_id": event.RequestId,
			"error":      err.Error(),
		})
	}
	msg.Ack()
}
