package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/platform/temporal/workflows/adoptions"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

var (
	_ ports.ApprovalOrchestrator = (*TemporalApprovals)(nil)
	_ ports.ApprovalOrchestrator = (*InlineApprovals)(nil)
)

// TemporalApprovals runs adoption decisions as Temporal workflows.
type TemporalApprovals struct {
	client    client.Client
	taskQueue string
}

// NewTemporalApprovals wires a Temporal client into the orchestrator.
func NewTemporalApprovals(c client.Client) *TemporalApprovals {
	return &TemporalApprovals{client: c, taskQueue: adoptionworkflows.ApprovalTaskQueue}
}

// Resolve starts the approval workflow and waits for its result. A decision
// already in flight for the same request is reported as a conflict.
func (o *TemporalApprovals) Resolve(ctx context.Context, input ports.ResolveInput) (*ports.RequestProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal approvals not configured")
	}
	if err := domain.ValidateDecision(input.Decision); err != nil {
		return nil, apierrors.Wrap(apierrors.KindValidation, err, "")
	}
	options := client.StartWorkflowOptions{
		ID:        workflowID(input),
		TaskQueue: o.taskQueue,
		// A second decision on the same request fails instead of joining the running one.
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		adoptionworkflows.ApprovalWorkflowName,
		adoptionworkflows.ApprovalWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, apierrors.Wrap(apierrors.KindConflict, domain.ErrNotPending, "")
		}
		return nil, err
	}
	var resolved ports.RequestProjection
	if err := run.Get(ctx, &resolved); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &resolved, nil
}

// InlineApprovals resolves requests directly without Temporal, for tests and local runs.
type InlineApprovals struct {
	service ports.Service
}

// NewInlineApprovals wraps the adoption service for synchronous execution.
func NewInlineApprovals(service ports.Service) *InlineApprovals {
	return &InlineApprovals{service: service}
}

// Resolve delegates to the application service without durable orchestration.
func (o *InlineApprovals) Resolve(ctx context.Context, input ports.ResolveInput) (*ports.RequestProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline approvals not configured")
	}
	return o.service.Resolve(ctx, input)
}

// workflowID is keyed by request so that concurrent decisions on one request
// collide on the Temporal side as well.
func workflowID(input ports.ResolveInput) string {
	return fmt.Sprintf("adoption-resolution-%s", input.ID)
}

// fromWorkflowError restores the error kind the activity encoded in the
// application error type.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		if kind := apierrors.ParseKind(appErr.Type()); kind != apierrors.KindInternal {
			return apierrors.New(kind, appErr.Message())
		}
	}
	return err
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return spanCtx.TraceID().String()
}
