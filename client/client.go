package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// API CLIENT — Calls the pulse backend over HTTP
// ============================================================================
// Endpoints (relative to Config.BaseURL):
//   GET  /companies/             list, ?skip=&limit=&industry=
//   GET  /companies/{id}         one company, 404 → ErrNotFound
//   POST /visualizations/generate  {prompt}
//   POST /visualizations/modify    {prompt, existing_visualization}
//
// This is the ONLY package that makes network calls.
// ============================================================================

// Client talks to the pulse backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for cfg.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ============================================================================
// COMPANIES
// ============================================================================

// ListCompanies returns one page of companies.
func (c *Client) ListCompanies(ctx context.Context, opts ListOptions) ([]Company, error) {
	q := url.Values{}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Industry != "" {
		q.Set("industry", opts.Industry)
	}

	path := "/companies/"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var companies []Company
	if err := c.do(ctx, http.MethodGet, path, nil, &companies); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// GetCompany returns a single company by numeric id.
func (c *Client) GetCompany(ctx context.Context, id int) (*Company, error) {
	var company Company
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/companies/%d", id), nil, &company); err != nil {
		return nil, fmt.Errorf("get company %d: %w", id, err)
	}
	return &company, nil
}

// ============================================================================
// VISUALIZATIONS
// ============================================================================

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type modifyRequest struct {
	Prompt                string                     `json:"prompt"`
	ExistingVisualization engine.VisualizationResult `json:"existing_visualization"`
}

// Generate asks the backend to turn a natural-language prompt into a result.
// A result with Success=false is not an error here; render it as-is.
func (c *Client) Generate(ctx context.Context, prompt string) (*engine.VisualizationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	c.logger.Info("pulse: generate", "prompt", truncate(prompt, 80))

	var result engine.VisualizationResult
	if err := c.do(ctx, http.MethodPost, "/visualizations/generate", generateRequest{Prompt: prompt}, &result); err != nil {
		return nil, fmt.Errorf("generate visualization: %w", err)
	}

	c.logger.Debug("pulse: generated", "type", result.VisualizationType, "rows", len(result.Rows), "success", result.Success)
	return &result, nil
}

// Modify restyles an existing result. The backend keeps the query and data.
func (c *Client) Modify(ctx context.Context, prompt string, existing engine.VisualizationResult) (*engine.VisualizationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	c.logger.Info("pulse: modify", "prompt", truncate(prompt, 80), "type", existing.VisualizationType)

	req := modifyRequest{Prompt: prompt, ExistingVisualization: existing}
	var result engine.VisualizationResult
	if err := c.do(ctx, http.MethodPost, "/visualizations/modify", req, &result); err != nil {
		return nil, fmt.Errorf("modify visualization: %w", err)
	}
	return &result, nil
}

// ============================================================================
// TRANSPORT
// ============================================================================

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("pulse: request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("pulse: request failed", "method", method, "path", path, "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Body: truncate(strings.TrimSpace(string(data)), 200)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
