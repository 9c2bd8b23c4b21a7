// Package audit records finished tool invocations to a Redis stream so
// operators can trail what the gateway executed. Recording is best-effort; a
// Redis outage never fails an invocation.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/standup-sydney/mcp-gateway/internal/tools"
	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// Recorder appends invocation results to a capped Redis stream.
type Recorder struct {
	rdb    *redis.Client
	stream string
	maxLen int64
	log    *logger.Logger
}

var _ tools.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder writing to the named stream, trimmed to
// roughly maxLen entries.
func NewRecorder(rdb *redis.Client, stream string, maxLen int64) *Recorder {
	return &Recorder{
		rdb:    rdb,
		stream: stream,
		maxLen: maxLen,
		log:    logger.Get().With("component", "audit"),
	}
}

// Record appends one invocation result. The payload is stored as JSON; the
// scalar fields are indexed separately so streams can be filtered without
// decoding.
func (r *Recorder) Record(ctx context.Context, result tools.InvocationResult) {
	payload, err := json.Marshal(result.Payload)
	if err != nil {
		r.log.Warnw("Failed to marshal invocation payload for audit", "tool", result.Tool, "error", err)
		payload = []byte("{}")
	}

	// Detach from the caller's deadline: an invocation that timed out still
	// deserves an audit entry.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	err = r.rdb.XAdd(recordCtx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"invocation_id": result.ID,
			"tool":          result.Tool,
			"status":        string(result.Status),
			"error_detail":  result.ErrorDetail,
			"timestamp":     result.Timestamp.Format(time.RFC3339Nano),
			"payload":       string(payload),
		},
	}).Err()
	if err != nil {
		r.log.Warnw("Failed to record invocation audit entry", "tool", result.Tool, "error", err)
	}
}
