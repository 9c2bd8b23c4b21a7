package workflow

import (
	"context"

	"github.com/standup-sydney/mcp-gateway/internal/tools"
)

// BookingWorkflowName is the definition name of the comedian booking
// workflow.
const BookingWorkflowName = "comedian_booking"

// BookingDefinition declares the comedian booking workflow: check the
// comedian's availability in the structured store, log the booking in the
// workspace, then set up the promotion campaign. Side effects of completed
// steps are not undone when a later step fails.
func BookingDefinition() Definition {
	return Definition{
		Name: BookingWorkflowName,
		Steps: []Step{
			{
				Name: "availability_check",
				Tool: "structured_store_subject_operations",
				BuildArgs: func(subjects map[string]string, stage string) map[string]any {
					return map[string]any{
						"action":     "get",
						"subject_id": subjects["subject_id"],
					}
				},
			},
			{
				Name: "logging",
				Tool: "workspace_logging",
				BuildArgs: func(subjects map[string]string, stage string) map[string]any {
					return map[string]any{
						"page_type": "booking_record",
						"action":    "create",
						"content": map[string]any{
							"subject_id": subjects["subject_id"],
							"target_id":  subjects["target_id"],
							"stage":      stage,
						},
					}
				},
			},
			{
				Name: "promotion_setup",
				Tool: "promotion_campaign",
				BuildArgs: func(subjects map[string]string, stage string) map[string]any {
					return map[string]any{
						"campaign_type": "comedian_spotlight",
						"content_data": map[string]any{
							"subject_id": subjects["subject_id"],
							"target_id":  subjects["target_id"],
						},
					}
				},
			},
		},
	}
}

// RegisterBookingTool exposes the booking workflow as the integration-free
// booking_workflow tool. The workflow itself composes structured-store,
// workspace, and promotion tools; each step is gated on its own integration.
func RegisterBookingTool(registry *tools.Registry, o *Orchestrator) error {
	return registry.Register(tools.Descriptor{
		Name:        "booking_workflow",
		Description: "Run the comedian booking workflow: availability check, booking log, promotion setup.",
		Params: []tools.Param{
			{Name: "subject_id", Type: tools.TypeString, Description: "Comedian identifier", Required: true},
			{Name: "target_id", Type: tools.TypeString, Description: "Event identifier", Required: true},
			{Name: "stage", Type: tools.TypeString, Description: "Workflow stage (initial, confirmed, promoted, completed)", Default: "initial"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			subjectID, _ := args["subject_id"].(string)
			targetID, _ := args["target_id"].(string)
			stage, _ := args["stage"].(string)

			report, err := o.Run(ctx, BookingWorkflowName, map[string]string{
				"subject_id": subjectID,
				"target_id":  targetID,
			}, stage)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"workflow":       report.Workflow,
				"subject_ids":    report.SubjectIDs,
				"stage":          report.Stage,
				"steps":          report.Steps,
				"overall_status": report.OverallStatus,
			}, nil
		},
	})
}
