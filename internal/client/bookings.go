package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"go.uber.org/zap"
)

var ErrAdminSessionRejected = errors.New("admin secret rejected")

type AdminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListBookings calls GET /bookings/{date} with the admin token obtained by
// OpenAdminSession, if any.
func (client *Client) ListBookings(ctx context.Context, date picker.Date) ([]picker.BookingRecord, error) {
	const op = "list bookings"
	if err := ctx.Err(); err != nil {
		return nil, &picker.NetworkError{Op: op, Err: err}
	}

	agent := fiber.Get(client.endpoint("bookings", date.String()))
	if token := client.currentAdminToken(); token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	status, body, err := client.send(ctx, op, agent)
	if err != nil {
		return nil, err
	}
	if err := statusError(op, status); err != nil {
		return nil, err
	}

	records := make([]picker.BookingRecord, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return records, nil
}

// OpenAdminSession exchanges the admin secret for a bearer token and keeps it
// for later ListBookings calls.
func (client *Client) OpenAdminSession(ctx context.Context, secret string) (AdminSession, error) {
	const op = "open admin session"
	if err := ctx.Err(); err != nil {
		return AdminSession{}, &picker.NetworkError{Op: op, Err: err}
	}

	agent := fiber.Post(client.endpoint("admin", "session")).JSON(map[string]string{"secret": secret})
	status, body, err := client.send(ctx, op, agent)
	if err != nil {
		return AdminSession{}, err
	}
	if status == fiber.StatusUnauthorized {
		client.setAdminToken("")
		return AdminSession{}, ErrAdminSessionRejected
	}
	if err := statusError(op, status); err != nil {
		return AdminSession{}, err
	}

	var session AdminSession
	if err := json.Unmarshal(body, &session); err != nil {
		return AdminSession{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if session.Token == "" {
		return AdminSession{}, fmt.Errorf("%s: empty token", op)
	}
	client.setAdminToken(session.Token)
	return session, nil
}

// SendData posts a draft payload to POST /bookings. A response outside 2xx is
// returned as an error so the caller does not report a rejected booking as sent.
func (client *Client) SendData(ctx context.Context, payload []byte) error {
	const op = "send booking"
	if err := ctx.Err(); err != nil {
		return &picker.NetworkError{Op: op, Err: err}
	}

	agent := fiber.Post(client.endpoint("bookings")).
		ContentType(fiber.MIMEApplicationJSON).
		Body(payload)
	status, _, err := client.send(ctx, op, agent)
	if err != nil {
		return err
	}
	if err := statusError(op, status); err != nil {
		client.logger.Warn("backend did not accept booking", zap.Int("status", status))
		return err
	}
	return nil
}

// RemoteAuthorizer authorizes the admin view against the backend.
type RemoteAuthorizer struct {
	client *Client
}

func NewRemoteAuthorizer(client *Client) RemoteAuthorizer {
	return RemoteAuthorizer{client: client}
}

func (authorizer RemoteAuthorizer) Authorize(ctx context.Context, secret string) bool {
	if secret == "" {
		return false
	}
	_, err := authorizer.client.OpenAdminSession(ctx, secret)
	if err != nil && !errors.Is(err, ErrAdminSessionRejected) {
		authorizer.client.logger.Warn("admin authorization failed", zap.Error(err))
	}
	return err == nil
}
