package events

import "time"

const TypeQueryServed = "rag.query_served"

// QueryServed records one answered RPC. It carries counts, never vectors.
type QueryServed struct {
	RequestId  string        `json:"request_id"`
	Rpc        string        `json:"rpc"`
	Query      string        `json:"query"`
	DeviceId   int           `json:"device_id,omitempty"`
	Variants   int           `json:"variants"`
	Chunks     int           `json:"chunks"`
	Images     int           `json:"images"`
	Duration   time.Duration `json:"duration_ns"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (e QueryServed) EventType() string { return TypeQueryServed }

func (e QueryServed) Timestamp() time.Time { return e.OccurredAt }

func (e QueryServed) Payload() map[string]interface{} {
	return map[string]interface{}{
		"request_id":  e.RequestId,
		"rpc":         e.Rpc,
		"query":       e.Query,
		"device_id":   e.DeviceId,
		"variants":    e.Variants,
		"chunks":      e.Chunks,
		"images":      e.Images,
		"duration_ms": e.Duration.Milliseconds(),
	}
}
