package picker

import "context"

type TimeSlotOption struct {
	Label string
}

// BookingRecord is one existing reservation as shown in the admin view.
// Empty UserName or UserPhone means the value was not provided.
type BookingRecord struct {
	ID        uint   `json:"id"`
	Time      string `json:"time"`
	UserName  string `json:"user_name,omitempty"`
	UserPhone string `json:"user_phone,omitempty"`
}

// AvailabilityClient returns the bookable slots for a date in display order.
// An empty result means "no slots that day" and is not an error.
type AvailabilityClient interface {
	FetchAvailableTimes(ctx context.Context, date Date) ([]TimeSlotOption, error)
}

// BookingSubmitter hands a complete draft to the host. Nothing is read back.
type BookingSubmitter interface {
	Submit(ctx context.Context, draft Draft) error
}

// HostChannel is the one-way data channel of the hosting environment.
type HostChannel interface {
	SendData(ctx context.Context, payload []byte) error
}

type Authorizer interface {
	Authorize(ctx context.Context, secret string) bool
}

type BookingsLister interface {
	ListBookings(ctx context.Context, date Date) ([]BookingRecord, error)
}

// DedupeSlotOptions drops repeated labels, keeping the first occurrence and the
// source order. Duplicates would be indistinguishable once submitted.
func DedupeSlotOptions(options []TimeSlotOption) []TimeSlotOption {
	seen := make(map[string]struct{}, len(options))
	result := make([]TimeSlotOption, 0, len(options))
	for _, option := range options {
		if _, duplicate := seen[option.Label]; duplicate {
			continue
		}
		seen[option.Label] = struct{}{}
		result = append(result, option)
	}
	return result
}
