package picker

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type listerStub struct {
	records []BookingRecord
	err     error
	dates   []Date
}

func (stub *listerStub) ListBookings(_ context.Context, date Date) ([]BookingRecord, error) {
	stub.dates = append(stub.dates, date)
	return stub.records, stub.err
}

var adminMessages = map[string]string{
	MessageAdminRejected: "wrong password",
	MessageBookingsCount: "{count} bookings",
	MessageNoBookings:    "no bookings",
}

func TestAdminViewRequiresAuthorization(t *testing.T) {
	t.Parallel()

	lister := &listerStub{}
	view, err := NewAdminView(NewStaticAuthorizer("letmein"), lister, adminMessages)
	if err != nil {
		t.Fatalf("new admin view: %v", err)
	}

	if _, err := view.ListBookings(context.Background(), mustParseDate(t, "2024-06-20")); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if len(lister.dates) != 0 {
		t.Fatal("expected lister not to be called before authorization")
	}

	if view.Authorize(context.Background(), "wrong") {
		t.Fatal("expected wrong secret to be rejected")
	}
	if view.RejectionMessage() != "wrong password" {
		t.Fatalf("unexpected rejection message %q", view.RejectionMessage())
	}
	if !view.Authorize(context.Background(), "letmein") {
		t.Fatal("expected correct secret to be accepted")
	}
	if view.Authorize(context.Background(), "wrong") {
		t.Fatal("expected failed retry to be rejected")
	}
	if view.Authorized() {
		t.Fatal("expected failed retry to revoke authorization")
	}
}

func TestAdminViewListsInReceivedOrder(t *testing.T) {
	t.Parallel()

	lister := &listerStub{records: []BookingRecord{
		{ID: 7, Time: "16:00", UserName: "Aziz"},
		{ID: 3, Time: "09:00", UserPhone: "+998901234567"},
	}}
	view, _ := NewAdminView(NewStaticAuthorizer("letmein"), lister, adminMessages)
	view.Authorize(context.Background(), "letmein")

	listing, err := view.ListBookings(context.Background(), mustParseDate(t, "2024-06-20"))
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if listing.Count != 2 || len(listing.Records) != 2 {
		t.Fatalf("expected 2 records, got %+v", listing)
	}
	if listing.Records[0].ID != 7 || listing.Records[1].ID != 3 {
		t.Fatalf("expected received order, got %+v", listing.Records)
	}
	if listing.Summary != "2 bookings" {
		t.Fatalf("unexpected summary %q", listing.Summary)
	}
}

func TestAdminViewEmptyAndFailedListing(t *testing.T) {
	t.Parallel()

	lister := &listerStub{}
	view, _ := NewAdminView(NewStaticAuthorizer("letmein"), lister, adminMessages)
	view.Authorize(context.Background(), "letmein")

	listing, err := view.ListBookings(context.Background(), mustParseDate(t, "2024-06-20"))
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if listing.Count != 0 || listing.Records == nil || listing.Summary != "no bookings" {
		t.Fatalf("unexpected empty listing %+v", listing)
	}

	lister.err = &ServerError{Op: "list bookings", Status: 503}
	if _, err := view.ListBookings(context.Background(), mustParseDate(t, "2024-06-20")); err == nil {
		t.Fatal("expected lister error to propagate")
	}
}

func TestBcryptAuthorizer(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash secret: %v", err)
	}
	authorizer := NewBcryptAuthorizer(string(hash))

	if !authorizer.Authorize(context.Background(), "s3cret") {
		t.Fatal("expected matching secret to be accepted")
	}
	if authorizer.Authorize(context.Background(), "S3cret") {
		t.Fatal("expected mismatching secret to be rejected")
	}
	if NewBcryptAuthorizer("").Authorize(context.Background(), "s3cret") {
		t.Fatal("expected empty hash to reject everything")
	}
}

func TestStaticAuthorizerRejectsEmptyConfiguredSecret(t *testing.T) {
	t.Parallel()

	if NewStaticAuthorizer("").Authorize(context.Background(), "") {
		t.Fatal("expected unset secret to reject empty input")
	}
}
