package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standup-sydney/mcp-gateway/internal/config"
)

func newReporterFixture(t *testing.T, lookup config.Lookup) (*Reporter, *Registry, *config.Snapshot) {
	t.Helper()
	snapshot := config.Build(lookup)
	registry := NewRegistry()
	reporter := NewReporter(snapshot, registry, ServerInfo{
		Name:      "Stand Up Sydney MCP Gateway",
		Version:   "test",
		Platform:  "comedy_booking_automation",
		StartedAt: time.Now().UTC(),
	})
	require.NoError(t, reporter.RegisterTools(registry))
	return reporter, registry, snapshot
}

func TestHealthReportsEnabledIntegrations(t *testing.T) {
	reporter, _, _ := newReporterFixture(t, lookupFrom(map[string]string{
		config.EnvNotionToken: "notion-token",
	}))

	health := reporter.Health()
	assert.Equal(t, "healthy", health["status"])
	assert.ElementsMatch(t,
		[]string{config.IntegrationWorkspace, config.IntegrationBrowserAutomation, config.IntegrationFilesystem},
		health["tools_enabled"])
	assert.Equal(t, 3, health["tools_count"])
	assert.NotNil(t, health["timestamp"])
}

func TestHealthIsIdempotent(t *testing.T) {
	reporter, _, _ := newReporterFixture(t, allSecretsLookup())

	first := reporter.Health()
	second := reporter.Health()
	assert.Equal(t, first["tools_enabled"], second["tools_enabled"])
	assert.Equal(t, first["tools_count"], second["tools_count"])
}

func TestListToolsConfiguredFlags(t *testing.T) {
	reporter, registry, _ := newReporterFixture(t, lookupFrom(map[string]string{
		config.EnvNotionToken: "notion-token",
	}))
	require.NoError(t, registry.Register(Descriptor{
		Name:        "workspace_logging",
		Integration: config.IntegrationWorkspace,
		Handler:     noopHandler,
	}))
	require.NoError(t, registry.Register(Descriptor{
		Name:        "promotion_campaign",
		Integration: config.IntegrationPromotion,
		Handler:     noopHandler,
	}))
	require.NoError(t, registry.Register(Descriptor{
		Name:        "browser_navigate",
		Integration: config.IntegrationBrowserAutomation,
		Handler:     noopHandler,
	}))

	listing := reporter.ListTools()
	tools, ok := listing["tools"].(map[string]any)
	require.True(t, ok)

	workspace := tools["workspace_logging"].(map[string]any)
	assert.True(t, workspace["enabled"].(bool))
	assert.True(t, workspace["configured"].(bool))

	promotion := tools["promotion_campaign"].(map[string]any)
	assert.False(t, promotion["enabled"].(bool))
	assert.False(t, promotion["configured"].(bool))

	// No secrets required: enabled and configured regardless of environment.
	browser := tools["browser_navigate"].(map[string]any)
	assert.True(t, browser["enabled"].(bool))
	assert.True(t, browser["configured"].(bool))

	// Integration-free introspection tools always report configured.
	healthCheck := tools["health_check"].(map[string]any)
	assert.True(t, healthCheck["configured"].(bool))

	assert.Equal(t, registry.Len(), listing["total_tools"])
}

func TestIntrospectionToolsInvokable(t *testing.T) {
	_, registry, snapshot := newReporterFixture(t, lookupFrom(nil))
	registry.Seal()
	invoker := NewInvoker(registry, snapshot)

	health := invoker.Invoke(context.Background(), "health_check", nil)
	require.Equal(t, StatusOK, health.Status)
	assert.Equal(t, "healthy", health.Payload["status"])

	listing := invoker.Invoke(context.Background(), "list_tools", nil)
	require.Equal(t, StatusOK, listing.Status)
	assert.Equal(t, registry.Len(), listing.Payload["total_tools"])

	diagnostics := invoker.Invoke(context.Background(), "server_diagnostics", nil)
	require.Equal(t, StatusOK, diagnostics.Status)
	env, ok := diagnostics.Payload["environment_variables"].(map[string]bool)
	require.True(t, ok)
	assert.False(t, env[config.EnvSupabaseURL])
}

func TestDiagnosticsNeverLeakSecretValues(t *testing.T) {
	reporter, _, _ := newReporterFixture(t, allSecretsLookup())

	diagnostics := reporter.Diagnostics()
	env, ok := diagnostics["environment_variables"].(map[string]bool)
	require.True(t, ok)
	for key, set := range env {
		assert.True(t, set, "secret %s should be reported as set", key)
	}
}
