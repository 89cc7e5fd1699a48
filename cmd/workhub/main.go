package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/workhubhq/workhub/pkg/catalog"
	"github.com/workhubhq/workhub/pkg/config"
	"github.com/workhubhq/workhub/pkg/entitlement"
	"github.com/workhubhq/workhub/pkg/httpserver"
	"github.com/workhubhq/workhub/pkg/logger"
	"github.com/workhubhq/workhub/pkg/pg"
	"github.com/workhubhq/workhub/pkg/redis"
	"github.com/workhubhq/workhub/pkg/requestid"
	"github.com/workhubhq/workhub/pkg/role"
	"github.com/workhubhq/workhub/pkg/session"
	"github.com/workhubhq/workhub/pkg/tenant"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	CatalogPath string `env:"CATALOG_PATH" envDefault:"catalog.yaml"`

	HTTP    httpserver.Config
	PG      pg.Config
	Redis   redis.Config
	Session session.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Environment, "workhub"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "service exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	registry, err := catalog.New(ctx, catalog.NewFileSource(cfg.CatalogPath))
	if err != nil {
		return err
	}

	roleStore := role.NewPostgresStore(pool)
	sessionStore := session.NewRedisStore(redisClient)
	tenantProvider := tenant.NewPostgresProvider(pool)

	resolver := entitlement.NewResolver(registry, entitlement.NewPostgresStore(pool), roleStore,
		entitlement.WithLogger(log),
	)

	binder := session.NewBinder(sessionStore)
	manager := session.NewManager(sessionStore, session.WithTTL(cfg.Session.TTL))

	router := newRouter(routerDeps{
		log:      log,
		binder:   binder,
		manager:  manager,
		tenants:  tenantProvider,
		roles:    roleStore,
		resolver: resolver,
		ready: []func(context.Context) error{
			pg.Healthcheck(pool),
			redis.Healthcheck(redisClient),
		},
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("http server listening", "addr", cfg.HTTP.Addr)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("http server stopped")
		}),
	)

	return srv.Run(ctx, router)
}
