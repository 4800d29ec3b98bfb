package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client talks to the booking backend. It implements picker.AvailabilityClient,
// picker.BookingsLister and picker.HostChannel.
type Client struct {
	baseURL string
	timeout time.Duration
	headers map[string]string
	logger  *zap.Logger

	mu         sync.RWMutex
	adminToken string
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

// WithHeader adds a header to every request, e.g. ngrok-skip-browser-warning
// when the backend sits behind an ngrok tunnel.
func WithHeader(key string, value string) Option {
	return func(client *Client) {
		client.headers[key] = value
	}
}

func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}

	client := &Client{
		baseURL: trimmed,
		timeout: defaultTimeout,
		headers: map[string]string{},
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

func (client *Client) setAdminToken(token string) {
	client.mu.Lock()
	client.adminToken = token
	client.mu.Unlock()
}

func (client *Client) currentAdminToken() string {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.adminToken
}

// prepare applies headers, correlation ID and the effective timeout. The
// agent is released by the Bytes call in send.
func (client *Client) prepare(ctx context.Context, agent *fiber.Agent) (*fiber.Agent, string) {
	requestID := uuid.NewString()
	agent.Set("Accept", fiber.MIMEApplicationJSON)
	agent.Set("X-Request-ID", requestID)
	for key, value := range client.headers {
		agent.Set(key, value)
	}

	timeout := client.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	agent.Timeout(timeout)
	return agent, requestID
}

func (client *Client) send(ctx context.Context, op string, agent *fiber.Agent) (int, []byte, error) {
	agent, requestID := client.prepare(ctx, agent)
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		client.logger.Warn("backend request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Errors("errors", errs),
		)
		return 0, nil, &picker.NetworkError{Op: op, Err: errors.Join(errs...)}
	}

	client.logger.Debug("backend request completed",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", status),
	)
	return status, body, nil
}

func (client *Client) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, part := range parts {
		escaped = append(escaped, url.PathEscape(part))
	}
	return client.baseURL + "/" + strings.Join(escaped, "/")
}

func statusError(op string, status int) error {
	switch {
	case status == fiber.StatusNotFound:
		return &picker.NotFoundError{Op: op}
	case status < 200 || status >= 300:
		return &picker.ServerError{Op: op, Status: status}
	default:
		return nil
	}
}
