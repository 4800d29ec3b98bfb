package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/slotpicker/internal/picker"
)

var errAdminRejected = errors.New("admin secret rejected")

func RunAdminCommand(ctx context.Context, view *picker.AdminView, secret string, date picker.Date, out io.Writer) error {
	if !view.Authorize(ctx, secret) {
		fmt.Fprintln(out, view.RejectionMessage())
		return errAdminRejected
	}

	listing, err := view.ListBookings(ctx, date)
	if err != nil {
		fmt.Fprintln(out, view.ErrorMessage(err))
		return fmt.Errorf("list bookings for %s: %w", date, err)
	}

	fmt.Fprintf(out, "%s: %s\n", listing.Date, listing.Summary)
	for _, record := range listing.Records {
		fmt.Fprintf(out, "  %s  #%d  %s  %s\n", record.Time, record.ID, orDash(record.UserName), orDash(record.UserPhone))
	}
	return nil
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
