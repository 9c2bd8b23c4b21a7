package tools

import "time"

// Status is the normalized outcome class of one tool invocation.
type Status string

const (
	// StatusOK means the handler ran and returned a payload.
	StatusOK Status = "ok"
	// StatusBackendDisabled means the tool's required integration is not
	// configured; the backend capability was never invoked.
	StatusBackendDisabled Status = "backend_disabled"
	// StatusError covers everything else: unknown tool, invalid arguments,
	// backend failures, timeouts.
	StatusError Status = "error"
)

// InvocationResult is the normalized outcome of one tool call. It is created
// fresh per invocation and never mutated after the invoker returns it.
type InvocationResult struct {
	ID          string         `json:"invocation_id"`
	Tool        string         `json:"tool"`
	Status      Status         `json:"status"`
	Payload     map[string]any `json:"payload,omitempty"`
	ErrorDetail string         `json:"error_detail,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// OK reports whether the invocation succeeded.
func (r InvocationResult) OK() bool {
	return r.Status == StatusOK
}
