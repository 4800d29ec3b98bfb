package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/slotpicker/internal/picker"
)

type availableTimesResponse struct {
	AvailableTimes []string `json:"available_times"`
}

// FetchAvailableTimes calls GET /available-times/{date}. A missing or empty
// available_times array yields an empty, non-nil slice.
func (client *Client) FetchAvailableTimes(ctx context.Context, date picker.Date) ([]picker.TimeSlotOption, error) {
	const op = "fetch available times"
	if err := ctx.Err(); err != nil {
		return nil, &picker.NetworkError{Op: op, Err: err}
	}

	status, body, err := client.send(ctx, op, fiber.Get(client.endpoint("available-times", date.String())))
	if err != nil {
		return nil, err
	}
	if err := statusError(op, status); err != nil {
		return nil, err
	}

	var payload availableTimesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	options := make([]picker.TimeSlotOption, 0, len(payload.AvailableTimes))
	for _, label := range payload.AvailableTimes {
		options = append(options, picker.TimeSlotOption{Label: label})
	}
	return picker.DedupeSlotOptions(options), nil
}
