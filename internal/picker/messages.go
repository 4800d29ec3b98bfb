package picker

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const (
	MessageNoSlots       = "slots.none"
	MessageLoading       = "slots.loading"
	MessageNetworkError  = "error.network"
	MessageServerError   = "error.server"
	MessageNotFound      = "error.not_found"
	MessageGenericError  = "error.generic"
	MessageSelectPrompt  = "prompt.select_date_time"
	MessageAdminRejected = "admin.rejected"
	MessageBookingsCount = "admin.bookings_count"
	MessageNoBookings    = "admin.no_bookings"
	MessageSubmitted     = "booking.submitted"
	MessageSlotTaken     = "booking.slot_taken"
)

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

// ErrorMessageKey maps a fetch or hand-off failure onto the message shown
// inline. Only 5xx responses read as "server error". A 409 means the slot was
// taken meanwhile; other statuses get the generic text.
func ErrorMessageKey(err error) string {
	var networkErr *NetworkError
	var serverErr *ServerError
	var notFoundErr *NotFoundError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &networkErr):
		return MessageNetworkError
	case errors.As(err, &notFoundErr):
		return MessageNotFound
	case errors.As(err, &serverErr) && serverErr.Status >= 500:
		return MessageServerError
	case errors.As(err, &serverErr) && serverErr.Status == http.StatusConflict:
		return MessageSlotTaken
	case errors.Is(err, ErrIncompleteSelection):
		return MessageSelectPrompt
	default:
		return MessageGenericError
	}
}

func UserMessage(messages map[string]string, err error) string {
	key := ErrorMessageKey(err)
	if key == "" {
		return ""
	}
	return translateMessage(messages, key)
}

func bookingsSummary(messages map[string]string, count int) string {
	if count == 0 {
		return translateMessage(messages, MessageNoBookings)
	}
	return strings.ReplaceAll(translateMessage(messages, MessageBookingsCount), "{count}", strconv.Itoa(count))
}
