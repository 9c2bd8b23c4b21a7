package tools

import (
	"context"

	"github.com/standup-sydney/mcp-gateway/internal/backend"
	"github.com/standup-sydney/mcp-gateway/internal/config"
)

// Catalog binds the backend capabilities to the gateway's tool descriptors.
// Delegating tools (subject operations, version control, onboarding) reuse
// the base tool's handler with transformed arguments; they declare the same
// required integration, so enablement gating behaves identically.
type Catalog struct {
	Store     backend.Capability
	SourceCtl backend.Capability
	Workspace backend.Capability
	Promotion backend.Capability
	Browser   backend.Capability
}

// Register adds every backend-bound tool to the registry.
func (c *Catalog) Register(registry *Registry) error {
	descriptors := []Descriptor{
		{
			Name:        "structured_store_query",
			Description: "Execute database operations against the structured store (comedians, events, bookings, venues).",
			Integration: config.IntegrationStructuredStore,
			Params: []Param{
				{Name: "table", Type: TypeString, Description: "Database table name", Required: true},
				{Name: "operation", Type: TypeString, Description: "Operation type (select, insert, update, delete)", Default: "select"},
				{Name: "filters", Type: TypeObject, Description: "Query filters for select/update/delete"},
				{Name: "data", Type: TypeObject, Description: "Row data for insert/update operations"},
			},
			Handler: c.storeQuery,
		},
		{
			Name:        "structured_store_subject_operations",
			Description: "Comedian-specific store operations (create, update, get, list, set_availability).",
			Integration: config.IntegrationStructuredStore,
			Params: []Param{
				{Name: "action", Type: TypeString, Description: "Action type (create, update, get, list, set_availability)", Required: true},
				{Name: "subject_data", Type: TypeObject, Description: "Comedian information for create/update"},
				{Name: "subject_id", Type: TypeString, Description: "Comedian ID for get/update operations"},
			},
			Handler: c.subjectOperations,
		},
		{
			Name:        "source_control_deployment_tracking",
			Description: "Track platform deployments in source control.",
			Integration: config.IntegrationSourceControl,
			Params: []Param{
				{Name: "repo", Type: TypeString, Description: "Repository name", Required: true},
				{Name: "action", Type: TypeString, Description: "Action type (status, create, list)", Default: "status"},
				{Name: "deployment_data", Type: TypeObject, Description: "Deployment information for creation"},
			},
			Handler: c.deploymentTracking,
		},
		{
			Name:        "source_control_version_control",
			Description: "Version-control operations on repository files.",
			Integration: config.IntegrationSourceControl,
			Params: []Param{
				{Name: "repo", Type: TypeString, Description: "Repository name", Required: true},
				{Name: "operation", Type: TypeString, Description: "Operation type (create_file, update_file, get_file, list_files)", Required: true},
				{Name: "branch", Type: TypeString, Description: "Git branch", Default: "main"},
				{Name: "file_data", Type: TypeObject, Description: "File information for create/update operations"},
			},
			Handler: c.versionControl,
		},
		{
			Name:        "workspace_logging",
			Description: "Project logging in the workspace (profiles, event plans, booking records, tasks).",
			Integration: config.IntegrationWorkspace,
			Params: []Param{
				{Name: "page_type", Type: TypeString, Description: "Page type (comedian_profile, event_plan, booking_record, task, roadmap)", Required: true},
				{Name: "action", Type: TypeString, Description: "Action type (create, update, get, list)", Default: "create"},
				{Name: "content", Type: TypeObject, Description: "Page content for create/update operations"},
			},
			Handler: c.workspaceLogging,
		},
		{
			Name:        "workspace_onboarding",
			Description: "Workspace-based comedian onboarding workflow.",
			Integration: config.IntegrationWorkspace,
			Params: []Param{
				{Name: "subject_data", Type: TypeObject, Description: "Comedian information and requirements", Required: true},
				{Name: "stage", Type: TypeString, Description: "Onboarding stage (initial, documentation, approval, complete)", Default: "initial"},
			},
			Handler: c.workspaceOnboarding,
		},
		{
			Name:        "promotion_campaign",
			Description: "Create a social-media promotion campaign for events and comedians.",
			Integration: config.IntegrationPromotion,
			Params: []Param{
				{Name: "campaign_type", Type: TypeString, Description: "Campaign type (event_announcement, comedian_spotlight, venue_promotion)", Required: true},
				{Name: "content_data", Type: TypeObject, Description: "Content information (text, images, hashtags)", Required: true},
				{Name: "schedule", Type: TypeObject, Description: "Posting schedule information"},
			},
			Handler: c.promotionCampaign,
		},
	}
	descriptors = append(descriptors, c.browserDescriptors()...)

	for _, d := range descriptors {
		if err := registry.Register(d); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) browserDescriptors() []Descriptor {
	urlParam := Param{Name: "url", Type: TypeString, Description: "Page URL to drive the browser to", Required: true}
	return []Descriptor{
		{
			Name:        "browser_navigate",
			Description: "Navigate the browser to a URL.",
			Integration: config.IntegrationBrowserAutomation,
			Params: []Param{
				urlParam,
				{Name: "wait_for", Type: TypeString, Description: "Selector to wait for after navigation"},
			},
			Handler: c.browserAction("navigate"),
		},
		{
			Name:        "browser_test_element",
			Description: "Assert that an element is present and interactable.",
			Integration: config.IntegrationBrowserAutomation,
			Params: []Param{
				urlParam,
				{Name: "selector", Type: TypeString, Description: "CSS selector of the element under test", Required: true},
				{Name: "action", Type: TypeString, Description: "Interaction to attempt (click, hover, focus)", Default: "click"},
			},
			Handler: c.browserAction("test_element"),
		},
		{
			Name:        "browser_form_test",
			Description: "Fill and submit a form, verifying the outcome.",
			Integration: config.IntegrationBrowserAutomation,
			Params: []Param{
				urlParam,
				{Name: "form_data", Type: TypeObject, Description: "Field values keyed by selector", Required: true},
				{Name: "submit", Type: TypeBool, Description: "Whether to submit after filling", Default: true},
			},
			Handler: c.browserAction("form_test"),
		},
		{
			Name:        "browser_screenshot",
			Description: "Capture a screenshot of a page.",
			Integration: config.IntegrationBrowserAutomation,
			Params: []Param{
				urlParam,
				{Name: "full_page", Type: TypeBool, Description: "Capture the full scroll height", Default: false},
			},
			Handler: c.browserAction("screenshot"),
		},
		{
			Name:        "browser_performance_test",
			Description: "Measure page load performance metrics.",
			Integration: config.IntegrationBrowserAutomation,
			Params: []Param{
				urlParam,
				{Name: "metrics", Type: TypeObject, Description: "Thresholds per metric name"},
			},
			Handler: c.browserAction("performance_test"),
		},
		{
			Name:        "browser_integration_test",
			Description: "Run a scripted end-to-end browser test suite.",
			Integration: config.IntegrationBrowserAutomation,
			Params: []Param{
				{Name: "test_suite", Type: TypeString, Description: "Name of the suite to run", Required: true},
				{Name: "config", Type: TypeObject, Description: "Suite configuration overrides"},
			},
			Handler: c.browserAction("integration_test"),
		},
	}
}

// --- handlers ---

func (c *Catalog) storeQuery(ctx context.Context, args map[string]any) (map[string]any, error) {
	operation, _ := args["operation"].(string)
	result, err := c.Store.Execute(ctx, operation, args)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"operation": operation,
		"table":     args["table"],
		"filters":   objectOrEmpty(args["filters"]),
		"data":      objectOrEmpty(args["data"]),
	}
	return mergePayload(payload, result), nil
}

// subjectOperations delegates to structured_store_query with the action
// mapped onto a CRUD operation, the same way the platform's original
// comedian_operations wrapper did.
func (c *Catalog) subjectOperations(ctx context.Context, args map[string]any) (map[string]any, error) {
	action, _ := args["action"].(string)

	operation := "update"
	switch action {
	case "get", "list":
		operation = "select"
	case "create":
		operation = "insert"
	}

	delegated := map[string]any{
		"table":     "comedians",
		"operation": operation,
		"filters":   map[string]any{},
		"data":      objectOrEmpty(args["subject_data"]),
	}
	if id, ok := args["subject_id"].(string); ok && id != "" {
		delegated["filters"] = map[string]any{"id": id}
	}
	return c.storeQuery(ctx, delegated)
}

func (c *Catalog) deploymentTracking(ctx context.Context, args map[string]any) (map[string]any, error) {
	action, _ := args["action"].(string)
	result, err := c.SourceCtl.Execute(ctx, action, args)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"repo":            args["repo"],
		"action":          action,
		"deployment_data": objectOrEmpty(args["deployment_data"]),
	}
	return mergePayload(payload, result), nil
}

// versionControl delegates to deployment tracking, folding branch and file
// data into the deployment payload.
func (c *Catalog) versionControl(ctx context.Context, args map[string]any) (map[string]any, error) {
	delegated := map[string]any{
		"repo":   args["repo"],
		"action": args["operation"],
		"deployment_data": map[string]any{
			"branch":    args["branch"],
			"file_data": objectOrEmpty(args["file_data"]),
		},
	}
	return c.deploymentTracking(ctx, delegated)
}

func (c *Catalog) workspaceLogging(ctx context.Context, args map[string]any) (map[string]any, error) {
	action, _ := args["action"].(string)
	result, err := c.Workspace.Execute(ctx, action, args)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"page_type": args["page_type"],
		"action":    action,
		"content":   objectOrEmpty(args["content"]),
	}
	return mergePayload(payload, result), nil
}

// workspaceOnboarding delegates to workspace_logging, recording the comedian
// profile with its onboarding stage.
func (c *Catalog) workspaceOnboarding(ctx context.Context, args map[string]any) (map[string]any, error) {
	delegated := map[string]any{
		"page_type": "comedian_profile",
		"action":    "create",
		"content": map[string]any{
			"subject_data":     objectOrEmpty(args["subject_data"]),
			"onboarding_stage": args["stage"],
		},
	}
	return c.workspaceLogging(ctx, delegated)
}

func (c *Catalog) promotionCampaign(ctx context.Context, args map[string]any) (map[string]any, error) {
	campaignType, _ := args["campaign_type"].(string)
	result, err := c.Promotion.Execute(ctx, campaignType, args)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"campaign_type": campaignType,
		"content_data":  objectOrEmpty(args["content_data"]),
		"schedule":      objectOrEmpty(args["schedule"]),
	}
	return mergePayload(payload, result), nil
}

// browserAction builds a handler that forwards the validated arguments to the
// browser driver under the given action name.
func (c *Catalog) browserAction(action string) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		result, err := c.Browser.Execute(ctx, action, args)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{"action": action}
		for k, v := range args {
			payload[k] = v
		}
		return mergePayload(payload, result), nil
	}
}

// --- helpers ---

func objectOrEmpty(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// mergePayload overlays the backend result onto the tool payload. Backend
// keys win so the acknowledgement status/message always survive.
func mergePayload(payload, result map[string]any) map[string]any {
	for k, v := range result {
		payload[k] = v
	}
	return payload
}
