// Package ollama talks to an Ollama-compatible model server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/rimas-backend/internal/config"
)

const (
	generatePath = "/api/generate"
	tagsPath     = "/api/tags"

	maxErrorBody = 2 << 10
)

type Client struct {
	baseURL     string
	model       string
	temperature float64
	numPredict  int

	timeout      time.Duration
	probeTimeout time.Duration

	httpClient *http.Client
}

func New(cfg config.OllamaConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("ollama: base_url required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("ollama: model required")
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
	}

	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	probeTimeout := cfg.ProbeTimeout.Duration
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	numPredict := cfg.NumPredict
	if numPredict <= 0 {
		numPredict = 256
	}

	return &Client{
		baseURL:      baseURL,
		model:        model,
		temperature:  cfg.Temperature,
		numPredict:   numPredict,
		timeout:      timeout,
		probeTimeout: probeTimeout,
		httpClient:   &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewWithHTTPClient(cfg config.OllamaConfig, httpClient *http.Client) (*Client, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

func (c *Client) Model() string { return c.model }

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate issues one non-streaming completion and returns the raw text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.temperature,
			NumPredict:  c.numPredict,
		},
	}
	var resp generateResponse
	if err := c.doJSON(ctx, c.timeout, http.MethodPost, generatePath, req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Ping probes /api/tags with the short probe timeout.
func (c *Client) Ping(ctx context.Context) error {
	var resp tagsResponse
	return c.doJSON(ctx, c.probeTimeout, http.MethodGet, tagsPath, nil, &resp)
}

// Available is Ping as a boolean.
func (c *Client) Available(ctx context.Context) bool {
	return c.Ping(ctx) == nil
}

func (c *Client) doJSON(ctx context.Context, timeout time.Duration, method, path string, body any, out any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ollama: encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ollama: decode %s response: %w", path, err)
	}
	return nil
}
