package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/rimas-backend/internal/platform/envutil"
)

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	return d, nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = u
	}
	dd, err := parseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dd, err := parseDuration(value.Value)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{5 * time.Second},
			IdleTimeout:       Duration{2 * time.Minute},
			ShutdownTimeout:   Duration{15 * time.Second},
			MaxRequestBytes:   1 << 20,
			AllowOrigins:      []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Ollama: OllamaConfig{
			BaseURL:      "http://localhost:11434",
			Model:        "llama3",
			Temperature:  0.3,
			NumPredict:   256,
			Timeout:      Duration{30 * time.Second},
			ProbeTimeout: Duration{2 * time.Second},
		},
		Semantic: SemanticConfig{
			Scorer:      "ollama",
			MaxInFlight: 4,
			Timeout:     Duration{30 * time.Second},
			CacheTTL:    Duration{24 * time.Hour},
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "./data/rimas.db",
		},
		Ingest: IngestConfig{
			Concurrency:           4,
			LanguageGate:          true,
			MinLanguageConfidence: 0.5,
		},
		Observability: ObservabilityConfig{
			ServiceName:    "rimas",
			SampleRatio:    0.1,
			MetricsEnabled: true,
		},
	}
}

// Load builds the config from defaults, an optional YAML/JSON file
// (RIMAS_CONFIG_PATH or ./config/config.{yaml,yml,json}) and env overrides.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := configPath(); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath() string {
	if p := strings.TrimSpace(os.Getenv("RIMAS_CONFIG_PATH")); p != "" {
		return p
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		p := filepath.Join(wd, "config", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(b, cfg)
	default:
		return yaml.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.HTTP.Addr = envutil.String("RIMAS_HTTP_ADDR", cfg.HTTP.Addr)

	cfg.Ollama.BaseURL = envutil.String("OLLAMA_BASE_URL", cfg.Ollama.BaseURL)
	cfg.Ollama.Model = envutil.String("OLLAMA_MODEL", cfg.Ollama.Model)
	cfg.Ollama.Temperature = envutil.Float("OLLAMA_TEMPERATURE", cfg.Ollama.Temperature)

	cfg.Semantic.Scorer = envutil.String("RIMAS_SCORER", cfg.Semantic.Scorer)
	cfg.Semantic.MaxInFlight = envutil.Int("RIMAS_SEMANTIC_MAX_INFLIGHT", cfg.Semantic.MaxInFlight)
	cfg.Semantic.Timeout.Duration = envutil.Duration("RIMAS_SEMANTIC_TIMEOUT", cfg.Semantic.Timeout.Duration)
	cfg.Semantic.CacheTTL.Duration = envutil.Duration("RIMAS_SEMANTIC_CACHE_TTL", cfg.Semantic.CacheTTL.Duration)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.Store.Driver = envutil.String("RIMAS_DB_DRIVER", cfg.Store.Driver)
	cfg.Store.DSN = envutil.String("RIMAS_DB_DSN", cfg.Store.DSN)

	cfg.Ingest.Concurrency = envutil.Int("RIMAS_INGEST_CONCURRENCY", cfg.Ingest.Concurrency)
	cfg.Ingest.LanguageGate = envutil.Bool("RIMAS_INGEST_LANGUAGE_GATE", cfg.Ingest.LanguageGate)

	cfg.Observability.TracingEnabled = envutil.Bool("OTEL_ENABLED", cfg.Observability.TracingEnabled)
	cfg.Observability.OTLPEndpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Observability.OTLPEndpoint)
	cfg.Observability.OTLPInsecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Observability.OTLPInsecure)
	cfg.Observability.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Observability.SampleRatio)
	cfg.Observability.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.Observability.MetricsEnabled)
}

func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}

	cfg.Semantic.Scorer = strings.ToLower(strings.TrimSpace(cfg.Semantic.Scorer))
	switch cfg.Semantic.Scorer {
	case "ollama":
		cfg.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Ollama.BaseURL), "/")
		if cfg.Ollama.BaseURL == "" {
			return errors.New("ollama.base_url is required when semantic.scorer=ollama")
		}
		if strings.TrimSpace(cfg.Ollama.Model) == "" {
			return errors.New("ollama.model is required when semantic.scorer=ollama")
		}
	case "mock":
	default:
		return fmt.Errorf("invalid semantic.scorer=%q", cfg.Semantic.Scorer)
	}
	if cfg.Semantic.MaxInFlight <= 0 {
		return fmt.Errorf("invalid semantic.max_in_flight=%d", cfg.Semantic.MaxInFlight)
	}
	if cfg.Semantic.Timeout.Duration <= 0 {
		cfg.Semantic.Timeout = Duration{30 * time.Second}
	}
	if cfg.Ollama.ProbeTimeout.Duration <= 0 {
		cfg.Ollama.ProbeTimeout = Duration{2 * time.Second}
	}
	if cfg.Ollama.Timeout.Duration <= 0 {
		cfg.Ollama.Timeout = cfg.Semantic.Timeout
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid store.driver=%q", cfg.Store.Driver)
	}
	if strings.TrimSpace(cfg.Store.DSN) == "" {
		return errors.New("store.dsn is required")
	}

	if cfg.Ingest.Concurrency < 1 {
		cfg.Ingest.Concurrency = 1
	}

	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "rimas"
	}
	if cfg.Observability.SampleRatio < 0 {
		cfg.Observability.SampleRatio = 0
	}
	if cfg.Observability.SampleRatio > 1 {
		cfg.Observability.SampleRatio = 1
	}
	return nil
}
