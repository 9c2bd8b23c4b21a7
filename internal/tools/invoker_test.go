package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standup-sydney/mcp-gateway/internal/backend"
	"github.com/standup-sydney/mcp-gateway/internal/config"
)

// fakeCapability counts calls and replays a canned result or error.
type fakeCapability struct {
	calls      int
	lastOp     string
	lastParams map[string]any
	result     map[string]any
	err        error
}

func (f *fakeCapability) Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	f.calls++
	f.lastOp = operation
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return map[string]any{"status": backend.StatusReadyForImplementation}, nil
}

type fakeRecorder struct {
	recorded []InvocationResult
}

func (f *fakeRecorder) Record(ctx context.Context, result InvocationResult) {
	f.recorded = append(f.recorded, result)
}

func lookupFrom(values map[string]string) config.Lookup {
	return func(key string) string { return values[key] }
}

func allSecretsLookup() config.Lookup {
	return lookupFrom(map[string]string{
		config.EnvSupabaseURL:     "https://example.supabase.co",
		config.EnvSupabaseAnonKey: "anon-key",
		config.EnvGitHubToken:     "ghp_token",
		config.EnvNotionToken:     "notion-token",
		config.EnvMetricoolAPIKey: "metricool-key",
	})
}

func TestInvokeUnknownTool(t *testing.T) {
	invoker := NewInvoker(NewRegistry(), config.Build(lookupFrom(nil)))

	result := invoker.Invoke(context.Background(), "nope", nil)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.ErrorDetail, "unknown tool: nope")
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.Timestamp.IsZero())
}

func TestInvokeDisabledIntegrationShortCircuits(t *testing.T) {
	registry := NewRegistry()
	called := 0
	require.NoError(t, registry.Register(Descriptor{
		Name:        "structured_store_query",
		Integration: config.IntegrationStructuredStore,
		Params: []Param{
			{Name: "table", Type: TypeString, Required: true},
			{Name: "operation", Type: TypeString, Default: "select"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			called++
			return map[string]any{}, nil
		},
	}))
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)))

	result := invoker.Invoke(context.Background(), "structured_store_query", map[string]any{
		"table":     "comedians",
		"operation": "select",
	})

	assert.Equal(t, StatusBackendDisabled, result.Status)
	assert.Contains(t, result.ErrorDetail, "SUPABASE_URL/SUPABASE_ANON_KEY")
	assert.Zero(t, called, "handler must never run for a disabled integration")
}

func TestInvokeValidatesArguments(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Descriptor{
		Name: "echo",
		Params: []Param{
			{Name: "message", Type: TypeString, Required: true},
			{Name: "count", Type: TypeNumber},
		},
		Handler: noopHandler,
	}))
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)))

	t.Run("missing required", func(t *testing.T) {
		result := invoker.Invoke(context.Background(), "echo", map[string]any{})
		assert.Equal(t, StatusError, result.Status)
		assert.Contains(t, result.ErrorDetail, `missing required parameter "message"`)
	})

	t.Run("wrong type", func(t *testing.T) {
		result := invoker.Invoke(context.Background(), "echo", map[string]any{"message": 42})
		assert.Equal(t, StatusError, result.Status)
		assert.Contains(t, result.ErrorDetail, `parameter "message" must be a string`)
	})

	t.Run("unknown parameter", func(t *testing.T) {
		result := invoker.Invoke(context.Background(), "echo", map[string]any{"message": "hi", "bogus": true})
		assert.Equal(t, StatusError, result.Status)
		assert.Contains(t, result.ErrorDetail, `unknown parameter "bogus"`)
	})
}

func TestInvokeAppliesDefaults(t *testing.T) {
	registry := NewRegistry()
	var seen map[string]any
	require.NoError(t, registry.Register(Descriptor{
		Name: "defaulted",
		Params: []Param{
			{Name: "operation", Type: TypeString, Default: "select"},
			{Name: "filters", Type: TypeObject},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			seen = args
			return map[string]any{}, nil
		},
	}))
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)))

	result := invoker.Invoke(context.Background(), "defaulted", nil)
	require.Equal(t, StatusOK, result.Status)
	assert.Equal(t, "select", seen["operation"])
	_, filtersSet := seen["filters"]
	assert.False(t, filtersSet, "optional parameter without default must stay absent")
}

func TestInvokeNormalizesBackendFailures(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Descriptor{
		Name: "degraded",
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, backend.ErrUnavailable
		},
	}))
	require.NoError(t, registry.Register(Descriptor{
		Name: "failing",
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, &backend.Error{Backend: "supabase", Detail: "row level security violation"}
		},
	}))
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)))

	degraded := invoker.Invoke(context.Background(), "degraded", nil)
	assert.Equal(t, StatusError, degraded.Status)
	assert.Contains(t, degraded.ErrorDetail, "unavailable")

	failing := invoker.Invoke(context.Background(), "failing", nil)
	assert.Equal(t, StatusError, failing.Status)
	assert.Contains(t, failing.ErrorDetail, "supabase backend error: row level security violation")
}

func TestInvokeTimesOutSlowHandlers(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Descriptor{
		Name: "slow",
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return map[string]any{}, nil
			}
		},
	}))
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)), WithTimeout(20*time.Millisecond))

	result := invoker.Invoke(context.Background(), "slow", nil)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.ErrorDetail, "timed out")
}

func TestInvokeRecoversFromHandlerPanic(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Descriptor{
		Name: "panicky",
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			panic("boom")
		},
	}))
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)))

	result := invoker.Invoke(context.Background(), "panicky", nil)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.ErrorDetail, "internal error")
}

func TestInvokeRecordsEveryOutcome(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Descriptor{Name: "ping", Handler: noopHandler}))
	recorder := &fakeRecorder{}
	invoker := NewInvoker(registry, config.Build(lookupFrom(nil)), WithRecorder(recorder))

	invoker.Invoke(context.Background(), "ping", nil)
	invoker.Invoke(context.Background(), "missing", nil)

	require.Len(t, recorder.recorded, 2)
	assert.Equal(t, StatusOK, recorder.recorded[0].Status)
	assert.Equal(t, StatusError, recorder.recorded[1].Status)
	assert.NotEqual(t, recorder.recorded[0].ID, recorder.recorded[1].ID)
}
