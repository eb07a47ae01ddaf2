package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/Apurer/pet-adoption-api/docs"
	adoptionserver "github.com/Apurer/pet-adoption-api/go"
	adoptionsworkflows "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/workflows"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/pet-adoption-api/internal/platform/temporal"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// ServiceName identifies the API in traces and logs.
const ServiceName = "pet-adoption-api"

// Run boots the pet adoption HTTP API with observability, repositories, and
// workflows wired. It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(ServiceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, err := NewServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer services.Close()

	approvals, closeApprovals := buildApprovals(cfg, services, instruments)
	defer closeApprovals()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(cfg, services, approvals, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("pet adoption API listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("pet adoption API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down pet adoption API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildApprovals picks the orchestrator for approve and reject. Temporal is
// only used when the worker can see the same repositories as the API.
func buildApprovals(cfg Config, services *Services, instruments *platformobservability.Instruments) (adoptionsports.ApprovalOrchestrator, func()) {
	logger := instruments.Logger
	inline := adoptionsworkflows.NewInlineApprovals(services.Adoptions)
	if !services.Durable {
		logger.Warn("repositories are in memory and not shared with the worker, resolving adoption requests inline")
		return inline, func() {}
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, resolving adoption requests inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return adoptionsworkflows.NewTemporalApprovals(temporalClient), temporalClient.Close
}

// NewRouter builds the gin engine with middleware, API routes, and docs.
func NewRouter(cfg Config, services *Services, approvals adoptionsports.ApprovalOrchestrator, logger *slog.Logger) *gin.Engine {
	validation.Init()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(ServiceName))
	engine.Use(cors.New(corsConfig(cfg)))

	responder := apierrors.NewResponder(logger)
	guard := adoptionserver.NewGuard(services.Users, responder)
	handlers := adoptionserver.ApiHandleFunctions{
		AuthAPI:      adoptionserver.NewAuthAPI(services.Users, responder),
		UserAPI:      adoptionserver.NewUserAPI(services.Users, responder),
		PetAPI:       adoptionserver.NewPetAPI(services.Pets, responder),
		AdoptionAPI:  adoptionserver.NewAdoptionAPI(services.Adoptions, approvals, guard, responder),
		Guard:        guard,
		LoginLimiter: adoptionserver.RateLimit(services.LoginLimiter, responder, logger),
	}
	adoptionserver.NewRouterWithGinEngine(engine, handlers)
	engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/doc.json"))))
	return engine
}

func corsConfig(cfg Config) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowsAnyOrigin() {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return config
}
