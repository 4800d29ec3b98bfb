package picker

import (
	"context"
	"errors"
	"sync"
)

type BookingsListing struct {
	Date    Date
	Records []BookingRecord
	Count   int
	Summary string
}

// AdminView lists existing bookings once Authorize has succeeded.
type AdminView struct {
	mu         sync.Mutex
	authorizer Authorizer
	lister     BookingsLister
	messages   map[string]string
	authorized bool
}

func NewAdminView(authorizer Authorizer, lister BookingsLister, messages map[string]string) (*AdminView, error) {
	if authorizer == nil {
		return nil, errors.New("authorizer is required")
	}
	if lister == nil {
		return nil, errors.New("bookings lister is required")
	}
	return &AdminView{
		authorizer: authorizer,
		lister:     lister,
		messages:   messages,
	}, nil
}

// Authorize replaces the current authorization with the outcome of this check.
func (view *AdminView) Authorize(ctx context.Context, secret string) bool {
	granted := view.authorizer.Authorize(ctx, secret)

	view.mu.Lock()
	view.authorized = granted
	view.mu.Unlock()
	return granted
}

func (view *AdminView) Authorized() bool {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.authorized
}

func (view *AdminView) RejectionMessage() string {
	return translateMessage(view.messages, MessageAdminRejected)
}

func (view *AdminView) ListBookings(ctx context.Context, date Date) (BookingsListing, error) {
	if !view.Authorized() {
		return BookingsListing{}, ErrNotAuthorized
	}

	records, err := view.lister.ListBookings(ctx, date)
	if err != nil {
		return BookingsListing{}, err
	}
	if records == nil {
		records = []BookingRecord{}
	}

	return BookingsListing{
		Date:    date,
		Records: records,
		Count:   len(records),
		Summary: bookingsSummary(view.messages, len(records)),
	}, nil
}

func (view *AdminView) ErrorMessage(err error) string {
	return UserMessage(view.messages, err)
}
