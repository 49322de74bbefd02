package app

import (
	"context"
	"fmt"

	"github.com/yungbote/rimas-backend/internal/config"
	httpapi "github.com/yungbote/rimas-backend/internal/http"
	httpH "github.com/yungbote/rimas-backend/internal/http/handlers"
	"github.com/yungbote/rimas-backend/internal/observability"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type App struct {
	Log     *logger.Logger
	Config  *config.Config
	Engine  *Engine
	Metrics *observability.Metrics

	server       *httpapi.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Env, Version, cfg.Observability)

	engine, err := NewEngine(ctx, cfg, log, EngineOptions{WithStore: true})
	if err != nil {
		log.Sync()
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics()
		metrics.StartRedisCollector(ctx, log, engine.Redis, 0)
	}

	server := httpapi.NewServer(cfg.HTTP, httpapi.RouterConfig{
		ServiceName:   cfg.Observability.ServiceName,
		AllowOrigins:  cfg.HTTP.AllowOrigins,
		Log:           log,
		Metrics:       metrics,
		HealthHandler: httpH.NewHealthHandler(engine.Prober, cfg.Ollama.ProbeTimeout.Duration),
		LyricsHandler: httpH.NewLyricsHandler(engine.Pipeline, engine.Repo, metrics),
		DrillHandler:  httpH.NewDrillHandler(engine.Validator, metrics),
		RhymeHandler:  httpH.NewRhymeHandler(engine.Repo, log),
	})

	return &App{
		Log:          log,
		Config:       cfg,
		Engine:       engine,
		Metrics:      metrics,
		server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("rimas server listening",
		"addr", a.Config.HTTP.Addr,
		"scorer", a.Config.Semantic.Scorer,
		"store", a.Config.Store.Driver,
		"cache", a.Engine.Redis != nil,
	)
	return a.server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Engine.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
