package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/batoulgheleb/crisiszone/internal/platform/config"
	"github.com/batoulgheleb/crisiszone/internal/platform/database"
	"github.com/batoulgheleb/crisiszone/internal/platform/health"
	"github.com/batoulgheleb/crisiszone/internal/platform/kafka"
	"github.com/batoulgheleb/crisiszone/internal/platform/kafka/producer"
	"github.com/batoulgheleb/crisiszone/internal/platform/metrics"
	"github.com/batoulgheleb/crisiszone/internal/platform/redis"
	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/events"
	portfolioHandler "github.com/batoulgheleb/crisiszone/internal/portfolio/handler"
	portfolioMetrics "github.com/batoulgheleb/crisiszone/internal/portfolio/metrics"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/progress"
	portfolioService "github.com/batoulgheleb/crisiszone/internal/portfolio/service"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/store"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/workers/expiry"
	"github.com/batoulgheleb/crisiszone/internal/seeder"
	"github.com/batoulgheleb/crisiszone/pkg/platform/middleware/request"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

const maxBodyBytes = 1 << 20

// repository is everything the service, progress and seeder layers read and write.
type repository interface {
	portfolioService.Repository
	progress.Store
	seeder.Store
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

type application struct {
	router  http.Handler
	sweeper *expiry.Sweeper
	redis   *redis.Client
	closers []func() error
	log     *slog.Logger
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("failed to release resource", "error", err)
		}
	}
}

// build connects optional infrastructure and assembles the portfolio module.
// Postgres, Redis and Kafka are each enabled only when configured.
func build(ctx context.Context, cfg config.Server, log *slog.Logger) (app *application, err error) {
	app = &application{log: log}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	reg := metrics.NewRegistry()
	reg.SetBuildInfo(health.Version, cfg.Environment)
	healthHandler := health.New(cfg.Environment)
	portfolioMx := portfolioMetrics.New(reg.Registerer())
	otel := tracer.NewOTel()

	progressOpts := []progress.Option{
		progress.WithLogger(log),
		progress.WithMetrics(portfolioMx),
		progress.WithTracer(otel),
	}
	var storeOpts []store.Option
	rc, err := redis.New(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		app.redis = rc
		app.closers = append(app.closers, rc.Close)
		healthHandler.RegisterOptionalCheck("redis", rc.Health)
		cache := progress.NewRedisCache(rc.Client, cfg.ProgressCacheTTL)
		progressOpts = append(progressOpts, progress.WithCache(cache))
		storeOpts = append(storeOpts, store.WithChangeListener(progress.NewInvalidator(cache, log)))
		log.Info("progress cache enabled", "ttl", cfg.ProgressCacheTTL.String())
	}

	repo, txr, err := buildRepository(ctx, cfg, log, reg, healthHandler, app, storeOpts)
	if err != nil {
		return nil, err
	}
	progressSvc := progress.New(repo, txr, progressOpts...)

	svcOpts := []portfolioService.Option{
		portfolioService.WithLogger(log),
		portfolioService.WithMetrics(portfolioMx),
		portfolioService.WithRequestTTL(cfg.RequestTTL),
		portfolioService.WithTracer(otel),
	}
	if cfg.Kafka.Brokers != "" {
		pcfg := producer.DefaultConfig(cfg.Kafka.Brokers)
		pcfg.Acks = cfg.Kafka.Acks
		p, err := producer.New(pcfg, log)
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		app.closers = append(app.closers, p.Close)
		checker := kafka.NewHealthChecker(cfg.Kafka.Brokers, p)
		healthHandler.RegisterOptionalCheck(checker.Name(), checker.Check)
		svcOpts = append(svcOpts, portfolioService.WithEvents(events.NewPublisher(p,
			events.WithTopic(cfg.Kafka.Topic),
			events.WithLogger(log),
			events.WithMetrics(portfolioMx),
			events.WithTracer(otel),
		)))
		log.Info("portfolio events enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	svc := portfolioService.New(portfolioService.StoresFrom(repo), txr, progressSvc, svcOpts...)

	if cfg.SeedDemoData && !cfg.IsProduction() {
		seedCtx := requestcontext.WithTime(ctx, time.Now())
		if err := seeder.New(repo, txr, log).SeedAll(seedCtx); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	if cfg.ExpirySweepInterval > 0 {
		app.sweeper, err = expiry.New(svc,
			expiry.WithInterval(cfg.ExpirySweepInterval),
			expiry.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("create expiry sweeper: %w", err)
		}
	}

	app.router = buildRouter(cfg, log, reg, healthHandler, portfolioHandler.New(svc, log))
	return app, nil
}

func buildRepository(
	ctx context.Context,
	cfg config.Server,
	log *slog.Logger,
	reg *metrics.Registry,
	healthHandler *health.Handler,
	app *application,
	storeOpts []store.Option,
) (repository, txRunner, error) {
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(ctx, dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if pool == nil {
		log.Info("DATABASE_URL not set, using in-memory storage")
		repo := store.NewInMemory(storeOpts...)
		return repo, store.NewCoordinator(repo, store.WithTxTimeout(cfg.TxTimeout)), nil
	}

	app.closers = append(app.closers, pool.Close)
	healthHandler.RegisterCheck("postgres", pool.Health)
	if err := reg.RegisterDB(pool.DB()); err != nil {
		return nil, nil, fmt.Errorf("register db metrics: %w", err)
	}
	log.Info("using postgres storage")
	return store.NewPostgres(pool.DB(), storeOpts...), store.NewPostgresTx(pool.DB(), cfg.TxTimeout), nil
}

func buildRouter(
	cfg config.Server,
	log *slog.Logger,
	reg *metrics.Registry,
	healthHandler *health.Handler,
	portfolio *portfolioHandler.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.ClientIP)
	r.Use(request.RequestTime)
	r.Use(request.Logger(log))
	r.Use(request.Latency(request.NewMetrics(reg.Registerer())))

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", reg.Handler())

	r.Group(func(api chi.Router) {
		api.Use(request.BodyLimit(maxBodyBytes))
		api.Use(request.Timeout(cfg.TxTimeout + 5*time.Second))
		api.Use(request.ContentTypeJSON)
		portfolio.Register(api)
	})
	return r
}
