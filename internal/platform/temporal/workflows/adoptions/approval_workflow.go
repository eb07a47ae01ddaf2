package adoptions

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/temporal/sequences"
)

const (
	// ApprovalWorkflowName is the public identifier for registering the workflow.
	ApprovalWorkflowName = "adoptions.workflows.Approval"
	// ApprovalTaskQueue is the queue consumed by the worker processing adoption decisions.
	ApprovalTaskQueue = "ADOPTION_APPROVAL"
)

// ApprovalWorkflowInput carries an admin decision on a request.
type ApprovalWorkflowInput struct {
	Command ports.ResolveInput
	TraceID string
}

// ApprovalWorkflow settles a request, adopting the pet when approved.
func ApprovalWorkflow(ctx workflow.Context, input ApprovalWorkflowInput) (*ports.RequestProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ApprovalWorkflow started", withTraceID(input.TraceID, "adoptionId", input.Command.ID)...)
	resolved, err := sequences.RunResolutionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ApprovalWorkflow failed", withTraceID(input.TraceID, "adoptionId", input.Command.ID, "error", err)...)
		return nil, err
	}
	logger.Info("ApprovalWorkflow completed", withTraceID(input.TraceID, "adoptionId", input.Command.ID)...)
	return resolved, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
