package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/rimas-backend/internal/config"
	"github.com/yungbote/rimas-backend/internal/ingest"
	"github.com/yungbote/rimas-backend/internal/lyrics"
	"github.com/yungbote/rimas-backend/internal/observability"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
	"github.com/yungbote/rimas-backend/internal/semantic"
	"github.com/yungbote/rimas-backend/internal/semantic/cache"
	"github.com/yungbote/rimas-backend/internal/semantic/mock"
	"github.com/yungbote/rimas-backend/internal/semantic/ollama"
	"github.com/yungbote/rimas-backend/internal/store"
	"github.com/yungbote/rimas-backend/internal/validation"
)

// Engine is the set of domain services shared by the server and the CLI.
type Engine struct {
	Scorer    semantic.Scorer
	Prober    semantic.Prober
	Validator *validation.Validator
	DB        *gorm.DB
	Repo      store.LyricRepo
	Pipeline  *ingest.Pipeline
	Redis     redis.UniversalClient
}

type EngineOptions struct {
	// WithStore opens the lyric database; without it ingestion only analyzes.
	WithStore bool
}

func NewEngine(ctx context.Context, cfg *config.Config, log *logger.Logger, opts EngineOptions) (*Engine, error) {
	e := &Engine{}

	if cfg.Redis.Addr != "" && cfg.Semantic.CacheTTL.Duration > 0 {
		rdb, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, semantic cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			e.Redis = rdb
		}
	}

	scorer, prober, err := NewScorer(cfg, log, e.Redis)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.Scorer, e.Prober = scorer, prober
	e.Validator = validation.New(scorer,
		validation.WithLogger(log.With("component", "Validator")),
		validation.WithTimeout(cfg.Semantic.Timeout.Duration),
		validation.WithMaxInFlight(cfg.Semantic.MaxInFlight),
		validation.WithTracer(observability.Tracer("github.com/yungbote/rimas-backend/internal/validation")),
	)

	if opts.WithStore {
		db, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("init store: %w", err)
		}
		e.DB = db
		e.Repo = store.NewLyricRepo(db, log)
	}

	var gate *lyrics.LanguageGate
	if cfg.Ingest.LanguageGate {
		gate = lyrics.NewLanguageGate(cfg.Ingest.MinLanguageConfidence)
	}
	e.Pipeline = ingest.NewPipeline(e.Repo, gate, log, cfg.Ingest.Concurrency)
	return e, nil
}

// NewScorer builds the configured scorer, wrapped in the Redis cache when rdb
// is non-nil. The returned prober reports backend reachability.
func NewScorer(cfg *config.Config, log *logger.Logger, rdb redis.UniversalClient) (semantic.Scorer, semantic.Prober, error) {
	var (
		scorer semantic.Scorer
		prober semantic.Prober
	)
	switch strings.ToLower(cfg.Semantic.Scorer) {
	case "mock":
		m := mock.New()
		scorer, prober = m, m
	case "ollama":
		client, err := ollama.New(cfg.Ollama)
		if err != nil {
			return nil, nil, fmt.Errorf("init ollama client: %w", err)
		}
		ts := semantic.NewTextScorer(client)
		scorer, prober = ts, client
	default:
		return nil, nil, fmt.Errorf("unknown semantic scorer %q", cfg.Semantic.Scorer)
	}
	if rdb != nil {
		scorer = cache.New(scorer, rdb, cfg.Semantic.CacheTTL.Duration, log)
	}
	return scorer, prober, nil
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.Redis != nil {
		_ = e.Redis.Close()
	}
	if e.DB != nil {
		if sqlDB, err := e.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
