package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

type stubService struct {
	resolveErr error
}

func (stubService) Create(_ context.Context, in ports.CreateInput) (*ports.RequestProjection, error) {
	r, _ := domain.NewRequest("r1", in.UserID, in.PetID)
	return projection.New(r, time.Time{}, time.Time{}), nil
}

func (stubService) List(context.Context, authz.Principal) ([]*ports.RequestView, error) {
	return nil, nil
}

func (stubService) GetByID(context.Context, string) (*ports.RequestProjection, error) {
	return nil, apierrors.NotFound("adoption request not found")
}

func (s stubService) Resolve(_ context.Context, in ports.ResolveInput) (*ports.RequestProjection, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	r := &domain.Request{ID: in.ID, UserID: "u1", PetID: "p1", Status: in.Decision}
	return projection.New(r, time.Time{}, time.Time{}), nil
}

func (stubService) Delete(context.Context, ports.DeleteInput) error { return nil }

func TestServiceCountsTransitionsByStatus(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	var logs bytes.Buffer
	svc := New(stubService{},
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		WithMeter(provider.Meter("test")),
	)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, ports.ResolveInput{ID: "r1", Decision: domain.StatusApproved})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, ports.ResolveInput{ID: "r2", Decision: domain.StatusRejected})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "adoption request resolved")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	byStatus := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "adoptions.service.transitions" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value("status")
				byStatus[status.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"approved": 1, "rejected": 1}, byStatus)
}

func TestServiceLogsClientErrorsAtInfo(t *testing.T) {
	var logs bytes.Buffer
	svc := New(stubService{resolveErr: apierrors.Conflict("only pending requests can be approved or rejected")},
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)

	_, err := svc.Resolve(context.Background(), ports.ResolveInput{ID: "r1", Decision: domain.StatusApproved})
	assert.Equal(t, apierrors.KindConflict, apierrors.KindOf(err))
	assert.Contains(t, logs.String(), `"level":"INFO"`)
	assert.Contains(t, logs.String(), `"kind":"conflict"`)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}
