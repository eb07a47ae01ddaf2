package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core adoption service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*ports.RequestProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Create", trace.WithAttributes(
		attribute.String("pet.id", input.PetID),
		attribute.String("user.id", input.UserID),
	))
	defer span.End()
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create adoption request", slog.String("pet_id", input.PetID))
	}
	span.SetAttributes(attribute.String("adoption.id", result.Entity.ID))
	s.metrics.recordCreated(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "adoption request created",
		slog.String("adoption_id", result.Entity.ID),
		slog.String("pet_id", result.Entity.PetID),
	)
	return result, nil
}

func (s *Service) List(ctx context.Context, principal authz.Principal) ([]*ports.RequestView, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.List", trace.WithAttributes(
		attribute.String("user.id", principal.ID),
		attribute.Bool("user.admin", principal.IsAdmin()),
	))
	defer span.End()
	result, err := s.inner.List(ctx, principal)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoption requests")
	}
	span.SetAttributes(attribute.Int("adoption.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*ports.RequestProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.GetByID", trace.WithAttributes(attribute.String("adoption.id", id)))
	defer span.End()
	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption request", slog.String("adoption_id", id))
	}
	return result, nil
}

func (s *Service) Resolve(ctx context.Context, input ports.ResolveInput) (*ports.RequestProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Resolve", trace.WithAttributes(
		attribute.String("adoption.id", input.ID),
		attribute.String("adoption.decision", string(input.Decision)),
	))
	defer span.End()
	result, err := s.inner.Resolve(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve adoption request", slog.String("adoption_id", input.ID))
	}
	s.metrics.recordTransition(ctx, string(result.Entity.Status))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "adoption request resolved",
		slog.String("adoption_id", result.Entity.ID),
		slog.String("status", string(result.Entity.Status)),
	)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, input ports.DeleteInput) error {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Delete", trace.WithAttributes(attribute.String("adoption.id", input.ID)))
	defer span.End()
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete adoption request", slog.String("adoption_id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level := slog.LevelError
	if kind := apierrors.KindOf(err); kind != apierrors.KindInternal {
		level = slog.LevelInfo
		attrs = append(attrs, slog.String("kind", kind.String()))
	}
	s.logger.LogAttrs(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

type serviceMetrics struct {
	created     metric.Int64Counter
	transitions metric.Int64Counter
	deleted     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("adoptions.service.created", metric.WithDescription("Number of adoption requests filed"))
	transitions, _ := m.Int64Counter("adoptions.service.transitions", metric.WithDescription("Number of adoption requests resolved by outcome"))
	deleted, _ := m.Int64Counter("adoptions.service.deleted", metric.WithDescription("Number of adoption requests deleted"))
	return serviceMetrics{created: created, transitions: transitions, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status string) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
