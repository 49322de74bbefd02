package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes" yaml:"max_request_bytes"`
	AllowOrigins      []string `json:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`
}

// OllamaConfig points at the semantic-scoring model server.
type OllamaConfig struct {
	BaseURL     string  `json:"base_url" yaml:"base_url"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	NumPredict  int     `json:"num_predict" yaml:"num_predict"`

	// Timeout bounds a single /api/generate call; ProbeTimeout bounds /api/tags.
	Timeout      Duration `json:"timeout" yaml:"timeout"`
	ProbeTimeout Duration `json:"probe_timeout" yaml:"probe_timeout"`
}

type SemanticConfig struct {
	// Scorer is "ollama" or "mock".
	Scorer string `json:"scorer" yaml:"scorer"`

	// MaxInFlight caps concurrent requests to the model across all drills.
	MaxInFlight int `json:"max_in_flight" yaml:"max_in_flight"`

	// Timeout bounds the whole semantic stage, including the wait for a slot.
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// CacheTTL applies when Redis is configured. Zero disables caching.
	CacheTTL Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
}

type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

type IngestConfig struct {
	Concurrency           int     `json:"concurrency" yaml:"concurrency"`
	LanguageGate          bool    `json:"language_gate" yaml:"language_gate"`
	MinLanguageConfidence float64 `json:"min_language_confidence" yaml:"min_language_confidence"`
}

// ObservabilityConfig controls tracing export and the Prometheus text endpoint.
type ObservabilityConfig struct {
	ServiceName    string  `json:"service_name" yaml:"service_name"`
	TracingEnabled bool    `json:"tracing_enabled" yaml:"tracing_enabled"`
	OTLPEndpoint   string  `json:"otlp_endpoint,omitempty" yaml:"otlp_endpoint,omitempty"`
	OTLPInsecure   bool    `json:"otlp_insecure,omitempty" yaml:"otlp_insecure,omitempty"`
	SampleRatio    float64 `json:"sample_ratio" yaml:"sample_ratio"`
	MetricsEnabled bool    `json:"metrics_enabled" yaml:"metrics_enabled"`
}

type Config struct {
	Env      string         `json:"env" yaml:"env"`
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
	Ollama   OllamaConfig   `json:"ollama" yaml:"ollama"`
	Semantic SemanticConfig `json:"semantic" yaml:"semantic"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Ingest   IngestConfig   `json:"ingest" yaml:"ingest"`

	Observability ObservabilityConfig `json:"observability" yaml:"observability"`
}
