// Package webhook posts JSON notifications to externally owned HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/consulting-site/pkg/logging"
)

var tracer = otel.Tracer("consulting-site.internal.webhook")

// DefaultTimeout bounds a single webhook call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ErrMissingURL is returned when PostJSON is called without a destination.
var ErrMissingURL = errors.New("webhook: url is required")

// StatusError reports a webhook response outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = http.StatusText(e.Code)
	}
	return fmt.Sprintf("webhook: endpoint returned %d (%s)", e.Code, status)
}

// Metrics receives one observation per call. A zero code means no response.
type Metrics interface {
	ObserveWebhook(code int, seconds float64)
}

// Client sends JSON payloads with a single POST and no retries.
type Client struct {
	httpClient *http.Client
	logger     *logging.Logger
	metrics    Metrics
	userAgent  string
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the transport timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.Component("webhook")
		}
	}
}

// WithMetrics records call outcomes and latency.
func WithMetrics(m Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUserAgent sets the User-Agent header sent with every call.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(ua)
	}
}

// NewClient creates a webhook client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.Default().Component("webhook"),
		userAgent:  "consulting-site/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PostJSON marshals payload and POSTs it to url. Any 2xx response is success;
// the response body is drained and ignored.
func (c *Client) PostJSON(ctx context.Context, url string, payload any) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrMissingURL
	}

	ctx, span := tracer.Start(ctx, "webhook.post", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(0, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	c.observe(resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}
		span.RecordError(statusErr)
		span.SetStatus(codes.Error, resp.Status)
		return statusErr
	}

	c.logger.Debug("webhook delivered", "status", resp.StatusCode, "duration_ms", elapsed.Milliseconds())
	return nil
}

func (c *Client) observe(code int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveWebhook(code, elapsed.Seconds())
}
