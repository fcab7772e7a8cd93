package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect opens one connection shared by the extractor and the publisher.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("device-assistant-ai"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
