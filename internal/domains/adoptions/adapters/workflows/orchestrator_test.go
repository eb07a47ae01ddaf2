package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/platform/temporal/workflows/adoptions"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

func TestTemporalApprovalsStartsWorkflowKeyedByRequest(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	input := ports.ResolveInput{ID: "r1", Decision: domain.StatusApproved}

	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.ID == "adoption-resolution-r1" &&
			o.TaskQueue == adoptionworkflows.ApprovalTaskQueue &&
			o.WorkflowExecutionErrorWhenAlreadyStarted
	}), adoptionworkflows.ApprovalWorkflowName, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		out := args.Get(1).(*ports.RequestProjection)
		*out = *projection.New(&domain.Request{ID: "r1", UserID: "u1", PetID: "p1", Status: domain.StatusApproved}, time.Time{}, time.Time{})
	})

	resolved, err := NewTemporalApprovals(c).Resolve(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, resolved.Entity.Status)
	c.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestTemporalApprovalsRestoresErrorKind(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(
		temporal.NewNonRetryableApplicationError("only pending requests can be approved or rejected", "conflict", nil),
	)

	_, err := NewTemporalApprovals(c).Resolve(context.Background(), ports.ResolveInput{ID: "r1", Decision: domain.StatusRejected})
	require.Error(t, err)
	assert.Equal(t, apierrors.KindConflict, apierrors.KindOf(err))
	assert.Equal(t, "only pending requests can be approved or rejected", apierrors.PublicMessage(err))
}

func TestTemporalApprovalsReportsInFlightDecisionAsConflict(t *testing.T) {
	c := &mocks.Client{}
	// A reject arriving while an approve of the same request runs must not
	// pick up the approve's result.
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.ID == "adoption-resolution-r1" && o.WorkflowExecutionErrorWhenAlreadyStarted
	}), mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("running", "", "run-1"))

	_, err := NewTemporalApprovals(c).Resolve(context.Background(), ports.ResolveInput{ID: "r1", Decision: domain.StatusRejected})
	c.AssertExpectations(t)
	assert.Equal(t, apierrors.KindConflict, apierrors.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrNotPending)
}

func TestTemporalApprovalsValidatesDecisionBeforeStarting(t *testing.T) {
	c := &mocks.Client{}
	_, err := NewTemporalApprovals(c).Resolve(context.Background(), ports.ResolveInput{ID: "r1", Decision: domain.StatusPending})
	assert.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
	c.AssertNotCalled(t, "ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

type stubService struct {
	ports.Service
	err error
}

func (s stubService) Resolve(context.Context, ports.ResolveInput) (*ports.RequestProjection, error) {
	return nil, s.err
}

func TestInlineApprovalsDelegates(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewInlineApprovals(stubService{err: boom}).Resolve(context.Background(), ports.ResolveInput{ID: "r1"})
	assert.ErrorIs(t, err, boom)

	var missing *InlineApprovals
	_, err = missing.Resolve(context.Background(), ports.ResolveInput{})
	assert.Error(t, err)
}
