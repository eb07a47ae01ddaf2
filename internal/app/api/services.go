package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	adoptionsmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionsrabbitmq "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/messaging/rabbitmq"
	adoptionsobs "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionspostgres "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionsapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petsmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	usersmemory "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/ratelimit"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/pet-adoption-api/internal/domains/users/application"
	usersports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
	platformredis "github.com/Apurer/pet-adoption-api/internal/platform/redis"
)

// Services is the decorated application layer shared by the API and the worker.
type Services struct {
	Users     usersports.Service
	Pets      petsports.Service
	Adoptions adoptionsports.Service
	// LoginLimiter throttles credential attempts per client IP.
	LoginLimiter usersports.LoginLimiter
	// Durable is true when the repositories live in PostgreSQL and are
	// therefore shared with other processes such as the approval worker.
	Durable bool

	cleanups []func()
}

// Close releases the connections opened by NewServices in reverse order.
func (s *Services) Close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

type repositories struct {
	users     usersports.Repository
	pets      petsports.Repository
	adoptions adoptionsports.Repository
}

// NewServices connects the configured backends and wires every bounded
// context. Unreachable optional backends fall back to in-process adapters.
func NewServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, error) {
	logger := instruments.Logger
	services := &Services{}

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	services.cleanups = append(services.cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			services.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	repos := buildRepositories(db)
	services.Durable = db != nil

	tokens, err := security.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to configure token issuer: %w", err)
	}
	services.Users = usersobs.New(
		usersapp.NewService(repos.users, security.NewBcryptHasher(cfg.BcryptCost), tokens),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	services.Pets = petsobs.New(
		petsapp.NewService(repos.pets),
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)

	publisher := buildPublisher(cfg, logger, services)
	services.Adoptions = adoptionsobs.New(
		adoptionsapp.NewService(
			repos.adoptions,
			services.Pets,
			services.Users,
			adoptionsapp.WithPublisher(publisher),
			adoptionsapp.WithLogger(logger),
		),
		adoptionsobs.WithLogger(logger),
		adoptionsobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionsobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)

	rdb, closeRedis := platformredis.Open(ctx, cfg.RedisAddr, logger)
	services.cleanups = append(services.cleanups, closeRedis)
	if rdb != nil {
		services.LoginLimiter = ratelimit.NewRedisLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
	} else {
		services.LoginLimiter = ratelimit.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	}
	return services, nil
}

func buildRepositories(db *gorm.DB) repositories {
	if db == nil {
		pets := petsmemory.NewRepository()
		return repositories{
			users:     usersmemory.NewRepository(),
			pets:      pets,
			adoptions: adoptionsmemory.NewRepository(pets),
		}
	}
	return repositories{
		users: userspostgres.NewRepository(db),
		pets:  petspostgres.NewRepository(db),
		adoptions: adoptionspostgres.NewRepository(db, func(tx *gorm.DB) petsports.StatusWriter {
			return petspostgres.NewRepository(tx)
		}),
	}
}

func buildPublisher(cfg Config, logger *slog.Logger, services *Services) adoptionsports.EventPublisher {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, adoption events are not published")
		return adoptionsports.NoopEventPublisher{}
	}
	publisher, err := adoptionsrabbitmq.Dial(cfg.RabbitMQURL, adoptionsrabbitmq.DefaultQueue)
	if err != nil {
		logger.Warn("failed to connect to rabbitmq, adoption events are not published", slog.String("error", err.Error()))
		return adoptionsports.NoopEventPublisher{}
	}
	services.cleanups = append(services.cleanups, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close rabbitmq publisher", slog.String("error", err.Error()))
		}
	})
	logger.Info("adoption events published to rabbitmq", slog.String("queue", adoptionsrabbitmq.DefaultQueue))
	return publisher
}
