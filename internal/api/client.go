// Package api é o cliente JSON do backend psiqueapp.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/psique-web/internal/metrics"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

const maxErrorBody = 64 << 10

// Client fala com a API REST. Um Client sem token serve as rotas públicas
// (login, cadastro); WithToken devolve uma cópia autenticada.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *logging.Logger
	metrics        *metrics.Metrics
	token          string
	onUnauthorized func(context.Context)
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithToken devolve uma cópia que envia "Authorization: Bearer <token>" em
// toda requisição. onUnauthorized é chamado quando qualquer resposta for 401.
func (c *Client) WithToken(token string, onUnauthorized func(context.Context)) *Client {
	cp := *c
	cp.token = token
	cp.onUnauthorized = onUnauthorized
	return &cp
}

func (c *Client) Token() string {
	return c.token
}

type errorPayload struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	Error     string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, resource string, body, out any) error {
	op := method + " " + path
	start := time.Now()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.observe(resource, method, "request", start)
			return &RequestError{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.observe(resource, method, "request", start)
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(resource, method, "network", start)
		c.logger.Warn("backend request failed", "op", op, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.observe(resource, method, "http_"+strconv.Itoa(resp.StatusCode), start)
		apiErr := readAPIError(resp)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		c.logger.Warn("backend returned error",
			"op", op,
			"status", apiErr.Status,
			"code", apiErr.Code,
			"message", apiErr.Message,
		)
		return apiErr
	}

	c.observe(resource, method, "ok", start)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiErr
	}
	apiErr.Message = payload.Message
	apiErr.Code = payload.ErrorCode
	if apiErr.Code == "" {
		apiErr.Code = payload.Error
	}
	return apiErr
}

func (c *Client) observe(resource, method, outcome string, start time.Time) {
	c.metrics.ObserveUpstream(resource, method, outcome, time.Since(start))
}
