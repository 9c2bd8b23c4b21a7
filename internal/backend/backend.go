// Package backend defines the single contract every external collaborator of
// the gateway satisfies, plus the typed failures they can report.
//
// The gateway core never depends on a vendor SDK's request/response shapes.
// Each integration (Supabase, GitHub, Notion, Metricool, the browser driver)
// sits behind the one-operation Capability interface, so the registry,
// invoker, and orchestrator stay agnostic of how a backend is reached. The
// shipped adapters are implementation stubs that acknowledge the operation
// with a "ready_for_implementation" payload; a production adapter replaces
// the body of Execute while preserving the same contract.
package backend

import (
	"context"
	"errors"
	"fmt"
)

// StatusReadyForImplementation tags the payload of a stubbed backend call.
const StatusReadyForImplementation = "ready_for_implementation"

// ErrUnavailable reports a capability that is reachable but degraded, e.g.
// constructed without the credentials it needs to operate.
var ErrUnavailable = errors.New("backend capability unavailable")

// Error is a structured failure reported by an external collaborator.
type Error struct {
	Backend string
	Detail  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s backend error: %s", e.Backend, e.Detail)
}

// Capability is the contract every backend integration satisfies: accept an
// operation descriptor with parameters, return a structured result or an
// error. Implementations must honor ctx cancellation on any outbound I/O.
type Capability interface {
	Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error)
}

// stubResult builds the acknowledgement payload shared by all stub adapters.
func stubResult(message string) map[string]any {
	return map[string]any{
		"status":  StatusReadyForImplementation,
		"message": message,
	}
}
