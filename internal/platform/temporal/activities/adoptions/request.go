package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

const (
	// ResolveRequestActivityName applies an approve or reject decision to a request.
	ResolveRequestActivityName = "adoptions.activities.ResolveRequest"
)

// Activities groups activities that operate on the adoptions bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the adoption service into the Temporal activities bundle.
// service must be the core service, not an orchestrated one, to avoid recursion.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// ResolveRequest moves a pending request to its terminal state. Client errors
// are returned as non-retryable application errors typed with their kind.
func (a *Activities) ResolveRequest(ctx context.Context, input ports.ResolveInput) (*ports.RequestProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("resolve activity not initialized", "adoptionId", input.ID)
		return nil, errors.New("resolve activity not initialized")
	}
	logger.Info("ResolveRequest activity started", "adoptionId", input.ID, "decision", input.Decision)
	resolved, err := a.service.Resolve(ctx, input)
	if err != nil {
		logger.Error("ResolveRequest activity failed", "adoptionId", input.ID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("ResolveRequest activity completed", "adoptionId", resolved.Entity.ID, "status", resolved.Entity.Status)
	return resolved, nil
}

func toApplicationError(err error) error {
	kind := apierrors.KindOf(err)
	if kind == apierrors.KindInternal {
		return err
	}
	return temporal.NewNonRetryableApplicationError(apierrors.PublicMessage(err), kind.String(), err)
}
