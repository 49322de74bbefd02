package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RIMAS_CONFIG_PATH", writeFile(t, "empty.yaml", ""))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Semantic.Scorer != "ollama" || cfg.Semantic.MaxInFlight != 4 {
		t.Fatalf("semantic=%+v", cfg.Semantic)
	}
	if cfg.Ollama.ProbeTimeout.Duration != 2*time.Second {
		t.Fatalf("probe timeout=%v", cfg.Ollama.ProbeTimeout.Duration)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Fatalf("driver=%q", cfg.Store.Driver)
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	body := `
env: production
ollama:
  base_url: http://ollama:11434/
  model: gemma2
  timeout: 12s
semantic:
  scorer: ollama
  max_in_flight: 2
  timeout: "8s"
store:
  driver: postgres
  dsn: postgres://rimas@db/rimas
`
	t.Setenv("RIMAS_CONFIG_PATH", writeFile(t, "config.yaml", body))
	t.Setenv("OLLAMA_MODEL", "qwen2")
	t.Setenv("RIMAS_SEMANTIC_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "production" {
		t.Fatalf("env=%q", cfg.Env)
	}
	if cfg.Ollama.BaseURL != "http://ollama:11434" {
		t.Fatalf("base url not trimmed: %q", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "qwen2" {
		t.Fatalf("env override lost: %q", cfg.Ollama.Model)
	}
	if cfg.Ollama.Timeout.Duration != 12*time.Second {
		t.Fatalf("ollama timeout=%v", cfg.Ollama.Timeout.Duration)
	}
	if cfg.Semantic.Timeout.Duration != 3*time.Second || cfg.Semantic.MaxInFlight != 2 {
		t.Fatalf("semantic=%+v", cfg.Semantic)
	}
	if cfg.Store.Driver != "postgres" {
		t.Fatalf("driver=%q", cfg.Store.Driver)
	}
}

func TestLoadJSON(t *testing.T) {
	body := `{"semantic":{"scorer":"mock","max_in_flight":1,"timeout":1000000000}}`
	t.Setenv("RIMAS_CONFIG_PATH", writeFile(t, "config.json", body))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Semantic.Scorer != "mock" || cfg.Semantic.Timeout.Duration != time.Second {
		t.Fatalf("semantic=%+v", cfg.Semantic)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"scorer":   "semantic:\n  scorer: gpt\n",
		"inflight": "semantic:\n  max_in_flight: 0\n",
		"driver":   "store:\n  driver: mongo\n",
		"duration": "semantic:\n  timeout: soon\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("RIMAS_CONFIG_PATH", writeFile(t, "config.yaml", body))
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
