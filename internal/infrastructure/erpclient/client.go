// Package erpclient is the HTTP JSON client for the upstream ERP backend.
// The backend owns every schema; this package only mirrors what the terminal
// consumes and maps the 404-equivalent answers onto shared.ErrNotFound.
package erpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/erp/posterminal/internal/infrastructure/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the backend (10MB)
const maxResponseSize = 10 * 1024 * 1024

const tracerName = "github.com/erp/posterminal/internal/infrastructure/erpclient"

// TokenSource supplies the bearer token echoed into every authenticated request
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config holds client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the ERP backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
	tracer     trace.Tracer
}

// New creates a backend client
func New(cfg Config, tokens TokenSource, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

// envelope is the backend's standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// do performs an authenticated request and decodes the response envelope
// into out (when out is non-nil). A 404 status maps to shared.ErrNotFound.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, span := c.tracer.Start(ctx, "erp."+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	err := c.doRequest(ctx, method, path, body, out)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve access token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}

	// A few endpoints answer 2xx with no body at all (profile updates)
	if len(data) == 0 {
		if resp.StatusCode < 400 {
			return nil
		}
		return &shared.RemoteError{StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &shared.RemoteError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		remote := &shared.RemoteError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			remote.Code = env.Error.Code
			remote.Message = env.Error.Message
			if remote.Code == "NOT_FOUND" {
				return shared.ErrNotFound
			}
		}
		logger.FromContext(ctx, c.logger).Debug("Backend request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", remote.Code),
		)
		return remote
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode backend payload: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}
