// Package config builds the immutable integration snapshot the gateway is
// configured with at startup.
//
// Each backend integration is enabled only when every secret/endpoint it
// requires is present in the environment. The snapshot is constructed once in
// the composition root and passed by reference to the invoker and the
// introspection reporter; nothing consults the environment after that, which
// keeps the rest of the gateway testable without touching process state.
package config

import (
	"sort"
	"strings"
)

// Integration names. Tool descriptors reference these.
const (
	IntegrationStructuredStore   = "structured-store"
	IntegrationSourceControl     = "source-control"
	IntegrationWorkspace         = "workspace"
	IntegrationPromotion         = "promotion"
	IntegrationBrowserAutomation = "browser-automation"
	IntegrationFilesystem        = "filesystem"
)

// Environment keys consumed by the snapshot.
const (
	EnvSupabaseURL     = "SUPABASE_URL"
	EnvSupabaseAnonKey = "SUPABASE_ANON_KEY"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvNotionToken     = "NOTION_TOKEN"
	EnvMetricoolAPIKey = "METRICOOL_API_KEY"
)

// Lookup abstracts an environment-style key/value source. Production code
// passes os.Getenv; tests pass a map lookup.
type Lookup func(key string) string

// Integration describes one backend integration's configuration state.
// SecretsPresent lists the required keys that were non-empty at build time.
type Integration struct {
	Name           string
	Description    string
	Enabled        bool
	RequiredKeys   []string
	SecretsPresent []string
}

// MissingKeys returns the required keys that were absent or empty at build
// time, in declaration order.
func (i Integration) MissingKeys() []string {
	present := make(map[string]bool, len(i.SecretsPresent))
	for _, k := range i.SecretsPresent {
		present[k] = true
	}
	var missing []string
	for _, k := range i.RequiredKeys {
		if !present[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

// MissingKeysHint renders the missing keys as a "KEY_A/KEY_B" hint for
// human-readable error details.
func (i Integration) MissingKeysHint() string {
	return strings.Join(i.MissingKeys(), "/")
}

// Snapshot is the immutable, startup-time record of which integrations are
// usable. It is never mutated after Build returns.
type Snapshot struct {
	integrations map[string]Integration
	order        []string
}

type integrationSpec struct {
	name        string
	description string
	keys        []string
	alwaysOn    bool
}

// The known integrations. Pure-local ones (browser automation, filesystem)
// are always enabled regardless of secrets.
var integrationSpecs = []integrationSpec{
	{
		name:        IntegrationStructuredStore,
		description: "Backend API operations for the Stand Up Sydney database",
		keys:        []string{EnvSupabaseURL, EnvSupabaseAnonKey},
	},
	{
		name:        IntegrationSourceControl,
		description: "Version control and deployment tracking",
		keys:        []string{EnvGitHubToken},
	},
	{
		name:        IntegrationWorkspace,
		description: "Project logging, tasks, and documentation",
		keys:        []string{EnvNotionToken},
	},
	{
		name:        IntegrationPromotion,
		description: "Social media promotion and analytics",
		keys:        []string{EnvMetricoolAPIKey},
	},
	{
		name:        IntegrationBrowserAutomation,
		description: "Web automation for data scraping and testing",
		alwaysOn:    true,
	},
	{
		name:        IntegrationFilesystem,
		description: "File operations for content management",
		alwaysOn:    true,
	},
}

// Build constructs the snapshot from the given key/value source. Absent
// values simply disable the integration; Build never fails.
func Build(lookup Lookup) *Snapshot {
	s := &Snapshot{integrations: make(map[string]Integration, len(integrationSpecs))}
	for _, spec := range integrationSpecs {
		integ := Integration{
			Name:         spec.name,
			Description:  spec.description,
			RequiredKeys: spec.keys,
		}
		enabled := true
		for _, key := range spec.keys {
			if lookup(key) != "" {
				integ.SecretsPresent = append(integ.SecretsPresent, key)
			} else {
				enabled = false
			}
		}
		integ.Enabled = enabled || spec.alwaysOn
		s.integrations[spec.name] = integ
		s.order = append(s.order, spec.name)
	}
	return s
}

// Integration returns the named integration's state.
func (s *Snapshot) Integration(name string) (Integration, bool) {
	integ, ok := s.integrations[name]
	return integ, ok
}

// Names returns all integration names in declaration order.
func (s *Snapshot) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// EnabledNames returns the names of all enabled integrations, sorted.
func (s *Snapshot) EnabledNames() []string {
	var out []string
	for _, name := range s.order {
		if s.integrations[name].Enabled {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
