package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/config"
	"github.com/dmitrymomot/tailoring/pkg/document"
	"github.com/dmitrymomot/tailoring/pkg/editability"
	"github.com/dmitrymomot/tailoring/pkg/httpserver"
	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/redis"
	"github.com/dmitrymomot/tailoring/pkg/requestid"
	"github.com/dmitrymomot/tailoring/pkg/template"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
	"github.com/dmitrymomot/tailoring/svc/api"
	"github.com/dmitrymomot/tailoring/svc/tailoring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("tailoringd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg tailoring.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	defs, err := tailoring.LoadDefinitions(cfg.TenantsFile)
	if err != nil {
		return err
	}

	engine, err := template.NewDirEngine(cfg.TemplateHome)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := document.NewMetrics(reg)

	deps := tailoring.Deps{
		Engine:       engine,
		TemplateHome: cfg.TemplateHome,
		Metrics:      metrics,
		Logger:       log,
		StrictDRDs:   cfg.StrictDRDs,
		Locks:        editability.NewMemoryLockStore(),
	}

	if cfg.PDFRendererURL != "" {
		pdf, err := document.NewPDFConverter(cfg.PDFRendererURL,
			document.WithPDFEndpoint(cfg.PDFEndpoint),
			document.WithPDFTimeout(cfg.PDFTimeout),
			document.WithPDFRetries(cfg.PDFRetries),
		)
		if err != nil {
			return err
		}
		deps.PDF = pdf
	}

	checks := []httpserver.Check{{
		Name: "templates",
		Probe: func(context.Context) error {
			_, err := os.Stat(cfg.TemplateHome)
			return err
		},
	}}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		deps.Locks = editability.NewRedisLockStore(client, cfg.Redis.KeyPrefix+":lock")
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
	} else {
		log.Warn("REDIS_URL not set, tailoring locks are kept in memory", logger.Component("tailoringd"))
	}

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	resolver, err := cfg.Resolver()
	if err != nil {
		return err
	}

	tl, err := tailoring.Build(defs, deps)
	if err != nil {
		return err
	}
	log.Info("tenants registered",
		logger.Component("tailoringd"),
		slog.Any("tenants", tl.Registry.Tenants()),
	)

	router := api.NewRouter(api.Config{
		Tailoring:    tl,
		Storage:      storage,
		Gatherer:     reg,
		Checks:       checks,
		Resolver:     resolver,
		TenantHeader: cfg.TenantHeader,
		Logger:       log,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func newLogger(cfg tailoring.Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithLevel(level),
		logger.WithContextExtractors(
			tenant.LoggerExtractor(),
			requestid.LoggerExtractor(),
		),
	), nil
}

func newStorage(ctx context.Context, cfg tailoring.Config) (artifact.Storage, error) {
	switch cfg.StorageDriver {
	case tailoring.StorageLocal:
		local, err := artifact.NewLocalStorage(cfg.StorageDir, cfg.StorageBaseURL)
		if err != nil {
			return nil, err
		}
		return local, nil
	case tailoring.StorageS3:
		s3, err := artifact.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3, nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
