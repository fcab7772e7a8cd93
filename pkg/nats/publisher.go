package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	AuditStream        = "RAG_AUDIT"
	AuditSubjectPrefix = "audit"
)

// Publisher writes events to the audit JetStream stream.
type Publisher struct {
	js     jetstream.JetStream
	logger logger.ILogger
}

func NewPublisher(nc *nats.Conn, log logger.ILogger) (*Publisher, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      AuditStream,
		Subjects:  []string{AuditSubjectPrefix + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		// stream may already exist with a different config
		log.Warn("NATS", "failed to ensure audit stream", map[string]interface{}{
			"stream": AuditStream,
			"error":  err.Error(),
		})
	}

	return &Publisher{js: js, logger: log}, nil
}

// Subject maps an event type to its audit subject.
func Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", AuditSubjectPrefix, eventType)
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(events.Envelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	subject := Subject(event.EventType())
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}
