// Package api contains the outbound HTTP client for the remote catalog
// service. It classifies every failure into the model error taxonomy and
// performs no retries: callers observe exactly one outcome per request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/bancoplus/catalog/internal/config"
	"github.com/bancoplus/catalog/internal/observability"
	"github.com/bancoplus/catalog/model"
)

const defaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client executes JSON requests against the catalog service.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// ClientOption configures optional dependencies.
type ClientOption func(*Client)

// WithMetrics sets the metrics instruments recorded per request.
func WithMetrics(m *observability.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the underlying HTTP client. Used in tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Client from the API configuration.
func NewClient(cfg config.APIConfig, logger *zap.Logger, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON executes a GET request and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON executes a POST request with a JSON body and decodes the
// response body into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// PutJSON executes a PUT request with a JSON body and decodes the
// response body into out.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete executes a DELETE request. The response body is ignored.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do builds, executes, and classifies a single request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header = c.buildHeaders(method)

	// A caller-scoped logger in the context wins over the client's own.
	logger := observability.LoggerFrom(ctx, c.logger)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		// No recognizable HTTP status: network-class failure, whatever the
		// transport-level cause (connection refused, DNS, timeout).
		c.metrics.ObserveFailure(method, path, time.Since(start))
		logger.Debug("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return model.NewNetworkError()
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.ObserveFailure(method, path, time.Since(start))
		return model.NewNetworkError()
	}

	c.metrics.ObserveRequest(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		msg := extractMessage(respBody)
		logger.Warn("backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return model.NewHTTPError(resp.StatusCode, msg)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return model.NewUnknownError(fmt.Sprintf("decode response: %v", err))
		}
	}

	return nil
}

// buildHeaders assembles the standard request headers. Every request gets a
// fresh correlation id so backend logs can be tied to a single interaction.
func (c *Client) buildHeaders(method string) http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	if method == http.MethodPost || method == http.MethodPut {
		h.Set("Content-Type", "application/json")
	}
	h.Set("X-Correlation-Id", uuid.NewString())
	if c.authToken != "" {
		h.Set("Authorization", "Bearer "+c.authToken)
	}
	return h
}

// extractMessage pulls a best-effort message out of an error response body.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}
