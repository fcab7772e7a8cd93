package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrExtractionFailed = errors.New("pdf extraction failed")

type extractRequest struct {
	GcsObjectName string `json:"gcs_object_name"`
}

type extractReply struct {
	Result json.RawMessage `json:"result_json"`
	Error  string          `json:"error,omitempty"`
}

// Extractor hands PDF extraction to the external worker listening on subject
// and waits for its reply.
type Extractor struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

func NewExtractor(nc *nats.Conn, subject string, timeout time.Duration) *Extractor {
	return &Extractor{nc: nc, subject: subject, timeout: timeout}
}

// Extract returns the worker's result JSON untouched.
func (e *Extractor) Extract(ctx context.Context, objectName string) (string, error) {
	data, err := json.Marshal(extractRequest{GcsObjectName: objectName})
	if err != nil {
		return "", fmt.Errorf("failed to marshal extract request: %w", err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	msg, err := e.nc.RequestWithContext(ctx, e.subject, data)
	if err != nil {
		return "", fmt.Errorf("extract request on %s: %w", e.subject, err)
	}
	return decodeReply(msg.Data)
}

func decodeReply(data []byte) (string, error) {
	var reply extractReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", fmt.Errorf("failed to decode extract reply: %w", err)
	}
	if reply.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrExtractionFailed, reply.Error)
	}

	result := strings.TrimSpace(string(reply.Result))
	if result == "" || result == "null" {
		return "", fmt.Errorf("%w: empty result", ErrExtractionFailed)
	}

	// workers may send the result either as an object or as an encoded string
	var encoded string
	if err := json.Unmarshal(reply.Result, &encoded); err == nil {
		return encoded, nil
	}
	return result, nil
}
