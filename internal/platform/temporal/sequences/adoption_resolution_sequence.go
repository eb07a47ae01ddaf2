package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/adoptions"
)

// RunResolutionSequence executes the activities that settle an adoption request.
func RunResolutionSequence(ctx workflow.Context, input ports.ResolveInput) (*ports.RequestProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("resolution sequence started", "adoptionId", input.ID, "decision", input.Decision)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var resolved ports.RequestProjection
	err := workflow.ExecuteActivity(ctx, adoptionactivities.ResolveRequestActivityName, input).Get(ctx, &resolved)
	if err != nil {
		logger.Error("resolution sequence failed", "adoptionId", input.ID, "error", err)
		return nil, err
	}
	logger.Info("resolution sequence completed", "adoptionId", input.ID)
	return &resolved, nil
}
