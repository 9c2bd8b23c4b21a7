package tools

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/standup-sydney/mcp-gateway/internal/config"
)

// ServerInfo identifies the gateway process in health and diagnostics output.
type ServerInfo struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	Platform  string    `json:"platform"`
	StartedAt time.Time `json:"started_at"`
}

// Reporter builds the health-check, tool-listing, and diagnostics payloads
// from the configuration snapshot and the registry. It only reads; it never
// invokes a backend capability.
type Reporter struct {
	snapshot *config.Snapshot
	registry *Registry
	info     ServerInfo
}

// NewReporter creates a reporter over the given snapshot and registry.
func NewReporter(snapshot *config.Snapshot, registry *Registry, info ServerInfo) *Reporter {
	return &Reporter{snapshot: snapshot, registry: registry, info: info}
}

// Health reports process status, the enabled integrations, and a timestamp.
func (r *Reporter) Health() map[string]any {
	enabled := r.snapshot.EnabledNames()
	return map[string]any{
		"status":        "healthy",
		"server":        r.info,
		"tools_enabled": enabled,
		"tools_count":   len(enabled),
		"uptime":        time.Since(r.info.StartedAt).Round(time.Second).String(),
		"timestamp":     time.Now().UTC(),
	}
}

// ListTools reports, for every registered tool, its enablement and whether
// its required integration is configured. Integration-free tools are always
// configured.
func (r *Reporter) ListTools() map[string]any {
	status := make(map[string]any)
	enabledCount := 0
	for _, d := range r.registry.Descriptors() {
		enabled := true
		configured := true
		if d.Integration != "" {
			integ, ok := r.snapshot.Integration(d.Integration)
			enabled = ok && integ.Enabled
			configured = ok && len(integ.MissingKeys()) == 0
		}
		if enabled {
			enabledCount++
		}
		status[d.Name] = map[string]any{
			"enabled":              enabled,
			"configured":           configured,
			"description":          d.Description,
			"required_integration": d.Integration,
		}
	}
	return map[string]any{
		"tools":         status,
		"total_tools":   r.registry.Len(),
		"enabled_tools": enabledCount,
		"server_config": r.info,
	}
}

// Diagnostics reports runtime platform information and which integration
// secrets are set. Secret values are never included, only presence.
func (r *Reporter) Diagnostics() map[string]any {
	secretsSet := make(map[string]bool)
	for _, name := range r.snapshot.Names() {
		integ, _ := r.snapshot.Integration(name)
		for _, key := range integ.RequiredKeys {
			secretsSet[key] = false
		}
		for _, key := range integ.SecretsPresent {
			secretsSet[key] = true
		}
	}
	wd, _ := os.Getwd()
	return map[string]any{
		"platform_info": map[string]any{
			"system":       runtime.GOOS,
			"architecture": runtime.GOARCH,
			"go_version":   runtime.Version(),
		},
		"server":                r.info,
		"environment_variables": secretsSet,
		"working_directory":     wd,
		"uptime":                time.Since(r.info.StartedAt).Round(time.Second).String(),
		"timestamp":             time.Now().UTC(),
	}
}

// RegisterTools registers the integration-free introspection tools.
func (r *Reporter) RegisterTools(registry *Registry) error {
	descriptors := []Descriptor{
		{
			Name:        "health_check",
			Description: "Health check for the gateway: process status, enabled integrations, uptime.",
			Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return r.Health(), nil
			},
		},
		{
			Name:        "list_tools",
			Description: "List all registered tools with their enablement and configuration state.",
			Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return r.ListTools(), nil
			},
		},
		{
			Name:        "server_diagnostics",
			Description: "Diagnose the gateway runtime: platform info and which integration secrets are set.",
			Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return r.Diagnostics(), nil
			},
		},
	}
	for _, d := range descriptors {
		if err := registry.Register(d); err != nil {
			return err
		}
	}
	return nil
}
