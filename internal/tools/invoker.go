package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/standup-sydney/mcp-gateway/internal/backend"
	"github.com/standup-sydney/mcp-gateway/internal/config"
	"github.com/standup-sydney/mcp-gateway/internal/metrics"
	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// Recorder receives every finished invocation for audit purposes. Record is
// best-effort: it must not fail the invocation.
type Recorder interface {
	Record(ctx context.Context, result InvocationResult)
}

// Invoker resolves tool names against the registry, gates them on the
// configuration snapshot, validates arguments, runs the handler under a
// timeout, and normalizes every lower-layer fault into an InvocationResult.
// It is the single place where backend failures are converted; nothing below
// it surfaces to callers as an unhandled fault.
type Invoker struct {
	registry *Registry
	snapshot *config.Snapshot
	timeout  time.Duration
	recorder Recorder
	log      *logger.Logger
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithTimeout bounds each handler call. Zero disables the bound.
func WithTimeout(d time.Duration) InvokerOption {
	return func(inv *Invoker) { inv.timeout = d }
}

// WithRecorder attaches an audit recorder.
func WithRecorder(r Recorder) InvokerOption {
	return func(inv *Invoker) { inv.recorder = r }
}

// NewInvoker creates an invoker over the given registry and snapshot.
func NewInvoker(registry *Registry, snapshot *config.Snapshot, opts ...InvokerOption) *Invoker {
	inv := &Invoker{
		registry: registry,
		snapshot: snapshot,
		log:      logger.Get().With("component", "invoker"),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke runs the named tool with the given arguments. It always returns a
// well-formed result; failed invocations are reported, never retried.
func (inv *Invoker) Invoke(ctx context.Context, name string, args map[string]any) InvocationResult {
	start := time.Now()
	result := InvocationResult{
		ID:   uuid.NewString(),
		Tool: name,
	}

	descriptor, err := inv.registry.Resolve(name)
	if err != nil {
		result.Status = StatusError
		result.ErrorDetail = fmt.Sprintf("unknown tool: %s", name)
		return inv.finish(ctx, result, start)
	}

	if descriptor.Integration != "" {
		integ, ok := inv.snapshot.Integration(descriptor.Integration)
		if !ok || !integ.Enabled {
			result.Status = StatusBackendDisabled
			result.ErrorDetail = disabledDetail(descriptor.Integration, integ, ok)
			return inv.finish(ctx, result, start)
		}
	}

	validated, err := validateArgs(descriptor, args)
	if err != nil {
		result.Status = StatusError
		result.ErrorDetail = err.Error()
		return inv.finish(ctx, result, start)
	}

	payload, err := inv.callHandler(ctx, descriptor, validated)
	if err != nil {
		result.Status = StatusError
		result.ErrorDetail = normalizeFailure(descriptor, err)
		return inv.finish(ctx, result, start)
	}

	result.Status = StatusOK
	result.Payload = payload
	return inv.finish(ctx, result, start)
}

// callHandler runs the handler under the configured timeout and converts a
// handler panic into an error instead of tearing down the serving goroutine.
func (inv *Invoker) callHandler(ctx context.Context, d Descriptor, args map[string]any) (payload map[string]any, err error) {
	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			inv.log.Errorw("Tool handler panicked", "tool", d.Name, "panic", r)
			payload = nil
			err = fmt.Errorf("internal error in tool %s: %v", d.Name, r)
		}
	}()
	return d.Handler(ctx, args)
}

func (inv *Invoker) finish(ctx context.Context, result InvocationResult, start time.Time) InvocationResult {
	result.Timestamp = time.Now().UTC()
	metrics.ObserveInvocation(result.Tool, string(result.Status), time.Since(start))
	if result.Status != StatusOK {
		inv.log.Warnw("Tool invocation failed", "tool", result.Tool, "status", result.Status, "detail", result.ErrorDetail)
	}
	if inv.recorder != nil {
		inv.recorder.Record(ctx, result)
	}
	return result
}

// disabledDetail names the configuration the caller must set to enable the
// integration, e.g. "check SUPABASE_URL/SUPABASE_ANON_KEY".
func disabledDetail(name string, integ config.Integration, known bool) string {
	if !known {
		return fmt.Sprintf("integration %s is not known to this gateway", name)
	}
	hint := integ.MissingKeysHint()
	if hint == "" {
		return fmt.Sprintf("%s integration not enabled", name)
	}
	return fmt.Sprintf("%s integration not enabled - check %s", name, hint)
}

// normalizeFailure maps handler and backend errors onto a human-readable
// error detail.
func normalizeFailure(d Descriptor, err error) string {
	var backendErr *backend.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("tool %s timed out", d.Name)
	case errors.Is(err, context.Canceled):
		return fmt.Sprintf("tool %s cancelled", d.Name)
	case errors.Is(err, backend.ErrUnavailable):
		return fmt.Sprintf("backend for %s is unavailable: %v", d.Name, err)
	case errors.As(err, &backendErr):
		return backendErr.Error()
	}
	return err.Error()
}
