package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/standup-sydney/mcp-gateway/internal/metrics"
	"github.com/standup-sydney/mcp-gateway/internal/tools"
	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// Orchestrator runs declared workflows through the tool invoker. Definitions
// are added at startup and read-only afterwards; independent runs may execute
// concurrently.
type Orchestrator struct {
	invoker     *tools.Invoker
	definitions map[string]Definition
	log         *logger.Logger
}

// NewOrchestrator creates an orchestrator over the given invoker.
func NewOrchestrator(invoker *tools.Invoker) *Orchestrator {
	return &Orchestrator{
		invoker:     invoker,
		definitions: make(map[string]Definition),
		log:         logger.Get().With("component", "orchestrator"),
	}
}

// Define registers a workflow definition. Duplicate names fail fast.
func (o *Orchestrator) Define(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("define workflow: name must not be empty")
	}
	if _, exists := o.definitions[def.Name]; exists {
		return fmt.Errorf("define workflow %q: duplicate name", def.Name)
	}
	o.definitions[def.Name] = def
	return nil
}

// Run executes the named workflow sequentially, in declaration order. Every
// step produces a record whatever its outcome; there is no rollback of
// completed steps. When ctx is cancelled mid-run no further steps are
// issued, but the report still carries one record per declared step, the
// unissued ones marked as errors.
func (o *Orchestrator) Run(ctx context.Context, name string, subjects map[string]string, stage string) (Report, error) {
	def, ok := o.definitions[name]
	if !ok {
		return Report{}, fmt.Errorf("unknown workflow: %s", name)
	}

	report := Report{
		Workflow:   def.Name,
		SubjectIDs: subjects,
		Stage:      stage,
		Steps:      make([]StepRecord, 0, len(def.Steps)),
	}

	allOK := true
	for _, step := range def.Steps {
		var result tools.InvocationResult
		if err := ctx.Err(); err != nil {
			result = skippedResult(step.Tool, err)
		} else {
			result = o.invoker.Invoke(ctx, step.Tool, step.BuildArgs(subjects, stage))
		}
		if !result.OK() {
			allOK = false
		}
		report.Steps = append(report.Steps, StepRecord{Step: step.Name, Result: result})
	}

	report.OverallStatus = OverallPartialFailure
	if allOK {
		report.OverallStatus = OverallOK
	}
	report.Timestamp = time.Now().UTC()

	metrics.ObserveWorkflow(def.Name, report.OverallStatus)
	o.log.Infow("Workflow executed", "workflow", def.Name, "overall_status", report.OverallStatus, "steps", len(report.Steps))
	return report, nil
}

// skippedResult records a step that was never issued because the run was
// cancelled before it.
func skippedResult(tool string, cause error) tools.InvocationResult {
	return tools.InvocationResult{
		ID:          uuid.NewString(),
		Tool:        tool,
		Status:      tools.StatusError,
		ErrorDetail: fmt.Sprintf("workflow cancelled before step execution: %v", cause),
		Timestamp:   time.Now().UTC(),
	}
}
